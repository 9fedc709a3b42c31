package services

import (
	"errors"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// AssignOptions carries the optional fields for a new enrollment.
type AssignOptions struct {
	DueDate      *time.Time
	AssignedByID *uint
	Required     bool
	AutoEnrolled bool
	Progress     int
}

// AssignCourse enrolls a user in a course if not already enrolled. When an
// enrollment already exists, a missing due date is backfilled but an existing
// one is never overwritten. Returns the enrollment and whether it was created.
func AssignCourse(db *gorm.DB, userID, courseID uint, opts AssignOptions) (*courseModels.Enrollment, bool, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == nil {
		if opts.DueDate != nil && enrollment.DueDate == nil {
			enrollment.DueDate = opts.DueDate
			if err := db.Model(&enrollment).Update("due_date", opts.DueDate).Error; err != nil {
				return nil, false, err
			}
		}
		return &enrollment, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment = courseModels.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		EnrolledAt:   now(),
		Progress:     opts.Progress,
		Status:       courseModels.StatusAssigned,
		DueDate:      opts.DueDate,
		Required:     opts.Required,
		AutoEnrolled: opts.AutoEnrolled,
		AssignedByID: opts.AssignedByID,
	}
	if enrollment.Progress >= 100 {
		enrollment.MarkCompleted(now())
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, false, err
	}
	return &enrollment, true, nil
}

// RuleMatches reports whether an active assignment rule applies to a user's
// profile. A nil department or role filter matches everyone, including users
// without a profile.
func RuleMatches(rule *courseModels.CourseAssignmentRule, profile *models.Profile) bool {
	if rule.DepartmentID != nil {
		if profile == nil || profile.DepartmentID == nil || *profile.DepartmentID != *rule.DepartmentID {
			return false
		}
	}
	if rule.Role != nil && *rule.Role != "" {
		if profile == nil || profile.Role != *rule.Role {
			return false
		}
	}
	return true
}

// AssignByRules applies all active assignment rules to a user, creating or
// touching one enrollment per matching rule. Called when a user identity is
// created, whether through signup, the admin form or a CSV import.
func AssignByRules(db *gorm.DB, user *models.User) ([]courseModels.Enrollment, error) {
	var profile models.Profile
	var prof *models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		prof = &profile
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var rules []courseModels.CourseAssignmentRule
	if err := db.Where("active = ?", true).Find(&rules).Error; err != nil {
		return nil, err
	}

	var touched []courseModels.Enrollment
	for i := range rules {
		rule := &rules[i]
		if !RuleMatches(rule, prof) {
			continue
		}
		var due *time.Time
		if rule.DueInDays != nil && *rule.DueInDays > 0 {
			d := today().AddDate(0, 0, *rule.DueInDays)
			due = &d
		}
		enrollment, _, err := AssignCourse(db, user.ID, rule.CourseID, AssignOptions{
			DueDate:      due,
			Required:     rule.Required,
			AutoEnrolled: true,
		})
		if err != nil {
			return nil, err
		}
		touched = append(touched, *enrollment)
	}
	return touched, nil
}

// BulkEnrollDepartment enrolls every user of a department into a course,
// skipping users that already hold an enrollment. initialProgress is clamped
// to 0..100; a 100% preset marks the enrollment completed immediately.
func BulkEnrollDepartment(db *gorm.DB, departmentID, courseID uint, initialProgress int, assignedBy *uint) (created, skipped int, err error) {
	if initialProgress < 0 {
		initialProgress = 0
	}
	if initialProgress > 100 {
		initialProgress = 100
	}

	var profiles []models.Profile
	if err = db.Where("department_id = ?", departmentID).Find(&profiles).Error; err != nil {
		return 0, 0, err
	}

	for _, p := range profiles {
		_, wasCreated, aerr := AssignCourse(db, p.UserID, courseID, AssignOptions{
			AssignedByID: assignedBy,
			Required:     true,
			Progress:     initialProgress,
		})
		if aerr != nil {
			return created, skipped, aerr
		}
		if wasCreated {
			created++
		} else {
			skipped++
		}
	}
	return created, skipped, nil
}

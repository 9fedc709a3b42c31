package services

import (
	"math"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// RecomputeEnrollmentProgress recalculates a user's enrollment from the
// material progress rows of a course and derives the status. Idempotent:
// re-running with unchanged source data converges to the same state.
//
// Status priority: a dated, unfinished enrollment past its due date is
// OVERDUE; otherwise 0% is ASSIGNED, partial is IN_PROGRESS and 100% is
// COMPLETED. An enrollment that already reached 100% stays COMPLETED even if
// its due date has since passed, and CompletedAt is never rewritten.
func RecomputeEnrollmentProgress(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	var total int64
	if err := db.Model(&courseModels.CourseMaterial{}).
		Where("course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	percent := 0
	if total > 0 {
		var done int64
		err := db.Model(&courseModels.MaterialProgress{}).
			Joins("JOIN course_materials ON course_materials.id = material_progresses.material_id").
			Where("material_progresses.user_id = ? AND course_materials.course_id = ? AND material_progresses.is_completed = ?",
				userID, courseID, true).
			Count(&done).Error
		if err != nil {
			return nil, err
		}
		percent = int(math.Round(100 * float64(done) / float64(total)))
	}

	enrollment, _, err := AssignCourse(db, userID, courseID, AssignOptions{Required: true})
	if err != nil {
		return nil, err
	}

	if enrollment.DueDate != nil && percent < 100 && today().After(*enrollment.DueDate) {
		enrollment.Status = courseModels.StatusOverdue
	} else if percent == 0 {
		enrollment.Status = courseModels.StatusAssigned
	} else if percent < 100 {
		enrollment.Status = courseModels.StatusInProgress
	} else {
		enrollment.Status = courseModels.StatusCompleted
		if enrollment.CompletedAt == nil {
			t := now()
			enrollment.CompletedAt = &t
		}
	}
	enrollment.Progress = percent

	if err := db.Model(enrollment).Select("status", "progress", "completed_at").
		Updates(map[string]interface{}{
			"status":       enrollment.Status,
			"progress":     enrollment.Progress,
			"completed_at": enrollment.CompletedAt,
		}).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

// RecordMaterialProgress upserts the (user, material) progress row and
// synchronously recomputes the owning course's enrollment.
func RecordMaterialProgress(db *gorm.DB, userID, materialID uint, percent, positionSeconds int) (*courseModels.MaterialProgress, *courseModels.Enrollment, error) {
	var material courseModels.CourseMaterial
	if err := db.First(&material, materialID).Error; err != nil {
		return nil, nil, err
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	var progress courseModels.MaterialProgress
	err := db.Where("user_id = ? AND material_id = ?", userID, materialID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = courseModels.MaterialProgress{UserID: userID, MaterialID: materialID}
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}

	progress.Percent = percent
	progress.IsCompleted = percent >= 100
	if positionSeconds > 0 {
		progress.LastPositionSeconds = positionSeconds
	}
	if err := db.Save(&progress).Error; err != nil {
		return nil, nil, err
	}

	enrollment, err := RecomputeEnrollmentProgress(db, userID, material.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return &progress, enrollment, nil
}

package dashboardController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetDashboard branches on the caller's effective role and returns the KPIs
// that role cares about.
func GetDashboard(c *fiber.Ctx) error {
	user, profile := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	role := services.EffectiveRole(user, profile)
	switch role {
	case models.RoleAdmin:
		return adminDashboard(c, db)
	case models.RoleManager:
		return managerDashboard(c, db, profile)
	default:
		return learnerDashboard(c, db, user.ID)
	}
}

func learnerDashboard(c *fiber.Ctx, db *gorm.DB, userID uint) error {
	var enrollments []courseModels.Enrollment
	if err := db.Preload("Course").Where("user_id = ?", userID).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	completed := 0
	inProgress := 0
	overdue := 0
	progressSum := 0
	enrolledCourseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		progressSum += e.Progress
		enrolledCourseIDs = append(enrolledCourseIDs, e.CourseID)
		switch e.Status {
		case courseModels.StatusCompleted:
			completed++
		case courseModels.StatusOverdue:
			overdue++
		default:
			inProgress++
		}
	}

	avgProgress := 0
	if len(enrollments) > 0 {
		avgProgress = int(float64(progressSum)/float64(len(enrollments)) + 0.5)
	}

	// Courses the learner is not enrolled in yet, as suggestions
	var suggestions []courseModels.Course
	sq := db.Order("created_at desc").Limit(5)
	if len(enrolledCourseIDs) > 0 {
		sq = sq.Where("id NOT IN ?", enrolledCourseIDs)
	}
	sq.Find(&suggestions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard loaded.", fiber.Map{
		"role":              models.RoleLearner,
		"total_courses":     len(enrollments),
		"completed":         completed,
		"in_progress":       inProgress,
		"overdue":           overdue,
		"avg_progress":      avgProgress,
		"enrollments":       enrollments,
		"suggested_courses": suggestions,
	})
}

func managerDashboard(c *fiber.Ctx, db *gorm.DB, profile *models.Profile) error {
	if profile == nil || profile.DepartmentID == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard loaded.", fiber.Map{
			"role":         models.RoleManager,
			"team_size":    0,
			"courses":      []fiber.Map{},
			"team_members": []fiber.Map{},
		})
	}

	var teamProfiles []models.Profile
	if err := db.Where("department_id = ?", *profile.DepartmentID).
		Find(&teamProfiles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	teamUserIDs := make([]uint, len(teamProfiles))
	for i, p := range teamProfiles {
		teamUserIDs[i] = p.UserID
	}

	var teamUsers []models.User
	if len(teamUserIDs) > 0 {
		db.Where("id IN ?", teamUserIDs).Find(&teamUsers)
	}
	userMap := make(map[uint]models.User, len(teamUsers))
	for _, u := range teamUsers {
		userMap[u.ID] = u
	}

	var enrollments []courseModels.Enrollment
	if len(teamUserIDs) > 0 {
		db.Preload("Course").Where("user_id IN ?", teamUserIDs).Find(&enrollments)
	}

	// Per-course aggregates across the department
	type courseStat struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Enrolled    int    `json:"enrolled"`
		Completed   int    `json:"completed"`
		Overdue     int    `json:"overdue"`
		AvgProgress int    `json:"avg_progress"`
		progressSum int
	}
	courseStats := make(map[uint]*courseStat)

	// Per-user aggregates
	type memberStat struct {
		UserID      uint   `json:"user_id"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		Enrolled    int    `json:"enrolled"`
		Completed   int    `json:"completed"`
		Overdue     int    `json:"overdue"`
		AvgProgress int    `json:"avg_progress"`
		progressSum int
	}
	memberStats := make(map[uint]*memberStat)
	for _, u := range teamUsers {
		memberStats[u.ID] = &memberStat{UserID: u.ID, Name: u.Name, Email: u.Email}
	}

	for _, e := range enrollments {
		cs, ok := courseStats[e.CourseID]
		if !ok {
			cs = &courseStat{CourseID: e.CourseID, Title: e.Course.Title}
			courseStats[e.CourseID] = cs
		}
		cs.Enrolled++
		cs.progressSum += e.Progress
		if e.Status == courseModels.StatusCompleted {
			cs.Completed++
		}
		if e.Status == courseModels.StatusOverdue {
			cs.Overdue++
		}

		if ms, ok := memberStats[e.UserID]; ok {
			ms.Enrolled++
			ms.progressSum += e.Progress
			if e.Status == courseModels.StatusCompleted {
				ms.Completed++
			}
			if e.Status == courseModels.StatusOverdue {
				ms.Overdue++
			}
		}
	}

	courses := make([]courseStat, 0, len(courseStats))
	for _, cs := range courseStats {
		if cs.Enrolled > 0 {
			cs.AvgProgress = int(float64(cs.progressSum)/float64(cs.Enrolled) + 0.5)
		}
		courses = append(courses, *cs)
	}
	members := make([]memberStat, 0, len(memberStats))
	for _, ms := range memberStats {
		if ms.Enrolled > 0 {
			ms.AvgProgress = int(float64(ms.progressSum)/float64(ms.Enrolled) + 0.5)
		}
		members = append(members, *ms)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard loaded.", fiber.Map{
		"role":         models.RoleManager,
		"team_size":    len(teamUserIDs),
		"courses":      courses,
		"team_members": members,
	})
}

func adminDashboard(c *fiber.Ctx, db *gorm.DB) error {
	var userCount, courseCount, departmentCount, enrollmentCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&courseModels.Course{}).Count(&courseCount)
	db.Model(&models.Department{}).Count(&departmentCount)
	db.Model(&courseModels.Enrollment{}).Count(&enrollmentCount)

	var completedCount, overdueCount int64
	db.Model(&courseModels.Enrollment{}).
		Where("status = ?", courseModels.StatusCompleted).Count(&completedCount)
	db.Model(&courseModels.Enrollment{}).
		Where("status = ?", courseModels.StatusOverdue).Count(&overdueCount)

	completionRate := 0
	if enrollmentCount > 0 {
		completionRate = int(float64(completedCount*100)/float64(enrollmentCount) + 0.5)
	}

	var recent []courseModels.Enrollment
	db.Preload("Course").Order("created_at desc").Limit(10).Find(&recent)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard loaded.", fiber.Map{
		"role":               models.RoleAdmin,
		"total_users":        userCount,
		"total_courses":      courseCount,
		"total_departments":  departmentCount,
		"total_enrollments":  enrollmentCount,
		"completed":          completedCount,
		"overdue":            overdueCount,
		"completion_rate":    completionRate,
		"recent_enrollments": recent,
	})
}

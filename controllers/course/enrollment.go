package courseController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetEnrollments lists all enrollments for reporting, filtered by free-text
// search and a completed/in_progress status filter.
func GetEnrollments(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	status := strings.TrimSpace(c.Query("status"))

	db := database.Database.Db

	query := db.Model(&courseModels.Enrollment{}).Preload("Course").Order("created_at desc")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.
			Joins("JOIN users ON users.id = enrollments.user_id").
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(courses.title) LIKE ? OR LOWER(courses.instructor) LIKE ?",
				like, like, like, like)
	}
	switch status {
	case "completed":
		query = query.Where("enrollments.progress >= 100")
	case "in_progress":
		query = query.Where("enrollments.progress < 100")
	}

	var enrollments []courseModels.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// CreateEnrollment manually enrolls a user in a course, optionally with a
// preset progress. A 100% preset marks the enrollment completed immediately.
func CreateEnrollment(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentUser(c)

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		UserID   uint       `json:"user_id"`
		CourseID uint       `json:"course_id"`
		Progress int        `json:"progress"`
		DueDate  *time.Time `json:"due_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	var course courseModels.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var assignedBy *uint
	if actor != nil {
		assignedBy = &actor.ID
	}

	enrollment, created, err := services.AssignCourse(db, user.ID, course.ID, services.AssignOptions{
		DueDate:      reqData.DueDate,
		AssignedByID: assignedBy,
		Required:     true,
		Progress:     reqData.Progress,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
	}
	if !created {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", enrollment)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment created.", enrollment)
}

// DeleteEnrollment removes an enrollment.
func DeleteEnrollment(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("enrollment_id")
	if err != nil || enrollmentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := db.Delete(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment deleted.", nil)
}

// GetMyCourses lists the caller's own enrollments.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Preload("Course").
		Where("user_id = ?", userID).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Order("courses.title asc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// ExportProgress streams all enrollments with user and course detail as CSV.
func ExportProgress(c *fiber.Ctx) error {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Preload("Course").Order("id asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export progress!", nil)
	}

	ids := make([]uint, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.UserID
	}
	var users []models.User
	db.Where("id IN ?", ids).Find(&users)
	userMap := make(map[uint]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"learner", "email", "course", "instructor", "duration_min", "external", "enrolled_at", "progress", "completed_at"})

	for _, e := range enrollments {
		u := userMap[e.UserID]
		duration := ""
		if e.Course.DurationMinutes != nil {
			duration = strconv.Itoa(*e.Course.DurationMinutes)
		}
		external := "No"
		if e.Course.DeliveredByExternal {
			external = "Yes"
		}
		completedAt := ""
		if e.CompletedAt != nil {
			completedAt = e.CompletedAt.Format(time.RFC3339)
		}
		w.Write([]string{
			u.Name,
			u.Email,
			e.Course.Title,
			e.Course.Instructor,
			duration,
			external,
			e.EnrolledAt.Format(time.RFC3339),
			fmt.Sprintf("%d", e.Progress),
			completedAt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export progress!", nil)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="enrollments_progress.csv"`)
	return c.Send(buf.Bytes())
}

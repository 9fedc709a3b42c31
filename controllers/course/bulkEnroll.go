package courseController

import (
	"fmt"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// BulkEnroll enrolls every user of a department into a course. Admins may
// pick any department; managers only their own. Users that already hold an
// enrollment are skipped, never duplicated.
func BulkEnroll(c *fiber.Ctx) error {
	user, profile := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData := new(struct {
		DepartmentID    uint `json:"department_id"`
		InitialProgress int  `json:"initial_progress"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.DepartmentID == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"department_id": "Please select a department!"})
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var dept models.Department
	if err := db.First(&dept, reqData.DepartmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Department not found!", nil)
	}

	// Managers can only bulk enroll their own department
	if !services.IsAdmin(user, profile) {
		if profile == nil || profile.DepartmentID == nil || *profile.DepartmentID != dept.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Managers can only bulk enroll their own department!", nil)
		}
	}

	created, skipped, err := services.BulkEnrollDepartment(db, dept.ID, course.ID, reqData.InitialProgress, &user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to bulk enroll!", nil)
	}

	msg := fmt.Sprintf("Bulk enroll OK. Department: %s | Created: %d, Skipped(existing): %d.", dept.Name, created, skipped)
	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, fiber.Map{
		"created": created,
		"skipped": skipped,
	})
}

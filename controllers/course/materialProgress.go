package courseController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateMaterialProgress records a user's progress through a material and
// synchronously recomputes the owning course's enrollment, so the enrollment
// status is always derived from the current material state.
func UpdateMaterialProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Percent         int  `json:"percent"`
		PositionSeconds int  `json:"position_seconds"`
		Completed       bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	percent := reqData.Percent
	if reqData.Completed {
		percent = 100
	}

	db := database.Database.Db

	// Remember whether the enrollment was already completed so finishing the
	// last material sends the completion mail exactly once
	var material courseModels.CourseMaterial
	if err := db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}
	var prior courseModels.Enrollment
	wasCompleted := db.Where("user_id = ? AND course_id = ?", userID, material.CourseID).
		First(&prior).Error == nil && prior.Status == courseModels.StatusCompleted

	progress, enrollment, err := services.RecordMaterialProgress(
		db, userID, uint(materialID), percent, reqData.PositionSeconds)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	if !wasCompleted && enrollment.Status == courseModels.StatusCompleted {
		var user models.User
		var course courseModels.Course
		if db.First(&user, userID).Error == nil && db.First(&course, material.CourseID).Error == nil {
			utils.SendCourseCompletedEmail(user.Email, user.Name, course.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded.", fiber.Map{
		"progress":   progress,
		"enrollment": enrollment,
	})
}

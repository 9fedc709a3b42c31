package adminController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ImpersonateStart switches the active identity to the target user. The
// returned token carries the admin's id so the session can be restored.
// Nested impersonation is refused: stop first.
func ImpersonateStart(c *fiber.Ctx) error {
	actor, actorProfile := middleware.CurrentUser(c)
	if actor == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to look up user!", nil)
	}

	alreadyImpersonating := middleware.ImpersonatorID(c) != nil
	if err := services.CanImpersonate(actor, actorProfile, &target, alreadyImpersonating); err != nil {
		status := fiber.StatusForbidden
		if errors.Is(err, services.ErrAlreadyImpersonating) || errors.Is(err, services.ErrImpersonateSelf) {
			status = fiber.StatusBadRequest
		}
		return middleware.JsonResponse(c, status, false, err.Error(), nil)
	}

	token, err := middleware.GenerateJWT(target.ID, target.Name, target.Email, target.IsSuperuser, &actor.ID)
	if err != nil {
		log.Printf("Error generating impersonation token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start impersonation!", nil)
	}

	target.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Now impersonating: "+target.Name, fiber.Map{
		"token": token,
		"user":  target,
	})
}

// ImpersonateStop restores the original identity recorded in the session.
// A session that is not impersonating gets an informational no-op.
func ImpersonateStop(c *fiber.Ctx) error {
	origID := middleware.ImpersonatorID(c)
	if origID == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You are not impersonating anyone.", nil)
	}

	var original models.User
	if err := database.Database.Db.First(&original, *origID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Original user not found!", nil)
	}

	token, err := middleware.GenerateJWT(original.ID, original.Name, original.Email, original.IsSuperuser, nil)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to stop impersonation!", nil)
	}

	original.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stopped impersonation.", fiber.Map{
		"token": token,
		"user":  original,
	})
}

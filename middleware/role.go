package middleware

import (
	"errors"

	"lms/database"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadIdentity resolves the authenticated user, their profile and effective
// role into Locals ("user", "profile", "role"). Runs after JWTMiddleware.
func LoadIdentity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var profile models.Profile
	var prof *models.Profile
	err := database.Database.Db.Preload("Department").Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		prof = &profile
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while resolving role!", nil)
	}

	c.Locals("user", &user)
	c.Locals("profile", prof)
	c.Locals("role", services.EffectiveRole(&user, prof))
	return c.Next()
}

// RequireRole returns a middleware that rejects requests whose effective role
// is not one of the given roles. ADMIN passes MANAGER gates.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
			if r == models.RoleManager && role == models.RoleAdmin {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "Not authorized!", nil)
	}
}

// CurrentUser pulls the identity loaded by LoadIdentity out of Locals.
func CurrentUser(c *fiber.Ctx) (*models.User, *models.Profile) {
	user, _ := c.Locals("user").(*models.User)
	profile, _ := c.Locals("profile").(*models.Profile)
	return user, profile
}

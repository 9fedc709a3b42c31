package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up impersonation. Authorization is decided inside the
// service so superuser rules apply even before a profile exists.
func SetupAdminRoutes(app *fiber.App) {
	impGroup := app.Group("/admin/impersonate", middleware.JWTMiddleware, middleware.LoadIdentity)

	impGroup.Post("/stop", adminControllers.ImpersonateStop)
	impGroup.Post("/:user_id", userValidators.TargetUserID(), adminControllers.ImpersonateStart)
}

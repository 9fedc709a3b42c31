package userRoutes

import (
	dashboardControllers "lms/controllers/dashboard"
	departmentControllers "lms/controllers/department"
	userControllers "lms/controllers/user"
	"lms/middleware"
	"lms/models"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user administration, departments and the dashboard
func SetupUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/users", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/", userControllers.GetUsers)
	adminGroup.Post("/", userValidators.UserForm(), userControllers.CreateUser)
	adminGroup.Put("/:user_id", userValidators.TargetUserID(), userValidators.UserForm(), userControllers.UpdateUser)
	adminGroup.Delete("/:user_id", userValidators.TargetUserID(), userControllers.DeleteUser)

	// CSV import/export
	adminGroup.Post("/import", userControllers.ImportUsers)
	adminGroup.Get("/export", userControllers.ExportUsers)

	deptGroup := app.Group("/departments", middleware.JWTMiddleware, middleware.LoadIdentity)
	deptGroup.Get("/", departmentControllers.GetDepartments)
	deptGroup.Post("/", middleware.RequireRole(models.RoleAdmin), departmentControllers.CreateDepartment)

	dashGroup := app.Group("/dashboard", middleware.JWTMiddleware, middleware.LoadIdentity)
	dashGroup.Get("/", dashboardControllers.GetDashboard)
}

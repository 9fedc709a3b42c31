package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"
	quizValidators "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course management, rules, enrollments and
// the quiz builder
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/courses", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))

	// Course CRUD
	adminGroup.Post("/", courseValidators.CourseForm(), courseControllers.CreateCourse)
	adminGroup.Put("/:course_id", courseValidators.CourseID(), courseValidators.CourseForm(), courseControllers.UpdateCourse)
	adminGroup.Delete("/:course_id", courseValidators.CourseID(), courseControllers.DeleteCourse)

	// Materials
	adminGroup.Post("/:course_id/materials", courseValidators.CourseID(), courseControllers.AddMaterial)
	adminGroup.Delete("/:course_id/materials/:material_id", courseValidators.CourseID(), courseValidators.MaterialID(), courseControllers.DeleteMaterial)

	// Quiz builder
	adminGroup.Post("/:course_id/quizzes", courseValidators.CourseID(), quizValidators.QuizForm(), courseControllers.CreateQuiz)

	quizGroup := app.Group("/admin/quizzes", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))
	quizGroup.Get("/:quiz_id/questions", quizValidators.QuizID(), courseControllers.GetQuestions)
	quizGroup.Post("/:quiz_id/questions", quizValidators.QuizID(), quizValidators.QuestionForm(), courseControllers.AddQuestion)

	questionGroup := app.Group("/admin/questions", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))
	questionGroup.Put("/:question_id", quizValidators.QuestionID(), quizValidators.QuestionForm(), courseControllers.UpdateQuestion)
	questionGroup.Delete("/:question_id", quizValidators.QuestionID(), courseControllers.DeleteQuestion)

	// Auto-enrollment rules
	ruleGroup := app.Group("/admin/rules", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))
	ruleGroup.Get("/", courseControllers.GetAssignmentRules)
	ruleGroup.Post("/", courseControllers.CreateAssignmentRule)
	ruleGroup.Delete("/:rule_id", courseControllers.DeleteAssignmentRule)

	// Enrollment administration; bulk enroll is open to managers for their
	// own department
	enrollGroup := app.Group("/admin/enrollments", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleAdmin))
	enrollGroup.Get("/", courseControllers.GetEnrollments)
	enrollGroup.Post("/", courseValidators.Enrollment(), courseControllers.CreateEnrollment)
	enrollGroup.Delete("/:enrollment_id", courseControllers.DeleteEnrollment)
	enrollGroup.Get("/export", courseControllers.ExportProgress)

	bulkGroup := app.Group("/manage/courses", middleware.JWTMiddleware, middleware.LoadIdentity, middleware.RequireRole(models.RoleManager))
	bulkGroup.Post("/:course_id/bulk-enroll", courseValidators.CourseID(), courseControllers.BulkEnroll)
}

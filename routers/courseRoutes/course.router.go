package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"
	quizValidators "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing course surface
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses", middleware.JWTMiddleware, middleware.LoadIdentity)

	courseGroup.Get("/", courseControllers.GetCourses)
	courseGroup.Get("/my", courseControllers.GetMyCourses)

	// Materials and progress
	courseGroup.Get("/:course_id/materials", courseValidators.CourseID(), courseControllers.GetMaterials)
	courseGroup.Get("/materials/:material_id/watch", courseValidators.MaterialID(), courseControllers.WatchMaterial)
	courseGroup.Post("/materials/:material_id/progress", courseValidators.MaterialID(), courseValidators.MaterialProgress(), courseControllers.UpdateMaterialProgress)

	// Quizzes
	courseGroup.Get("/:course_id/quizzes", courseValidators.CourseID(), courseControllers.GetCourseQuizzes)

	quizGroup := app.Group("/quizzes", middleware.JWTMiddleware, middleware.LoadIdentity)
	quizGroup.Get("/:quiz_id/take", quizValidators.QuizID(), courseControllers.TakeQuiz)
	quizGroup.Post("/:quiz_id/submit", quizValidators.QuizID(), quizValidators.SubmitForm(), courseControllers.SubmitQuiz)
	quizGroup.Get("/attempts/:attempt_id", courseControllers.GetAttemptResult)
}

package courseValidator

import (
	"strings"
	"time"

	courseController "lms/controllers/course"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseID parses the course id route parameter.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("course_id")
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MaterialID parses the material id route parameter.
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialID, err := c.ParamsInt("material_id")
		if err != nil || materialID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material ID!", nil)
		}
		c.Locals("materialID", materialID)
		return c.Next()
	}
}

// CourseForm validator middleware for the admin create/edit form.
func CourseForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseController.CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Duration
		if reqData.DurationMinutes != nil && *reqData.DurationMinutes <= 0 {
			errors["duration_minutes"] = "Duration must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// MaterialProgress validator middleware for a learner's progress update.
func MaterialProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Percent         int  `json:"percent"`
			PositionSeconds int  `json:"position_seconds"`
			Completed       bool `json:"completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Percent < 0 || reqData.Percent > 100 {
			errors["percent"] = "Percent must be between 0 and 100!"
		}
		if reqData.PositionSeconds < 0 {
			errors["position_seconds"] = "Position must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// Enrollment validator middleware for the manual enrollment form.
func Enrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint       `json:"user_id"`
			CourseID uint       `json:"course_id"`
			Progress int        `json:"progress"`
			DueDate  *time.Time `json:"due_date"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course is required!"
		}
		if reqData.Progress < 0 || reqData.Progress > 100 {
			errors["progress"] = "Progress must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

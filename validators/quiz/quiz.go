package quizValidator

import (
	"strings"

	courseController "lms/controllers/course"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors flattens struct tag violations into the field->message map the
// response envelope expects.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "Invalid value for " + fe.Field() + " (" + fe.Tag() + ")!"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// QuizID parses the quiz id route parameter.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := c.ParamsInt("quiz_id")
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// QuestionID parses the question id route parameter.
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, err := c.ParamsInt("question_id")
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
		}
		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// QuizForm validator middleware for quiz creation.
func QuizForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseController.QuizPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// QuestionForm validator middleware for adding or editing a question. Choice
// structure rules depend on the question type, so they live here rather than
// in struct tags.
func QuestionForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseController.QuestionPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		errors := make(map[string]string)

		switch reqData.QuestionType {
		case courseModels.QuestionMultiple:
			filled := 0
			for _, choice := range reqData.Choices {
				if strings.TrimSpace(choice) != "" {
					filled++
				}
			}
			if filled < 2 {
				errors["choices"] = "Provide at least 2 choices!"
			}
			if reqData.CorrectChoice == nil {
				errors["correct_choice"] = "Select the correct choice!"
			} else if *reqData.CorrectChoice < 1 || *reqData.CorrectChoice > len(reqData.Choices) {
				errors["correct_choice"] = "Correct choice is out of range!"
			} else if strings.TrimSpace(reqData.Choices[*reqData.CorrectChoice-1]) == "" {
				errors["correct_choice"] = "Correct choice must have text!"
			}
		case courseModels.QuestionTrueFalse:
			if reqData.TrueIsCorrect == nil {
				errors["true_is_correct"] = "Select whether True is the correct answer!"
			}
		case courseModels.QuestionShortText:
			if len(reqData.Choices) > 0 {
				errors["choices"] = "Short text questions take no choices!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// SubmitForm validator middleware for a learner's quiz submission.
func SubmitForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseController.SubmitPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

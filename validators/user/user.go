package userValidator

import (
	"regexp"
	"strings"

	userController "lms/controllers/user"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// TargetUserID parses the user id route parameter.
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("user_id")
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}
		c.Locals("targetUserID", userID)
		return c.Next()
	}
}

// UserForm validator middleware for the admin create/edit form.
func UserForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(userController.UserPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Full Name
		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Full name is required!"
		}

		// Validate Email
		if reqData.Email == "" || !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		// Validate Age
		if reqData.Age != nil && (*reqData.Age < 14 || *reqData.Age > 100) {
			errors["age"] = "Age must be between 14 and 100!"
		}

		// Validate Role
		if reqData.Role != "" && !models.IsValidRole(reqData.Role) {
			errors["role"] = "Invalid role!"
		}

		// Validate Sex
		if sex := strings.ToUpper(strings.TrimSpace(reqData.Sex)); sex != "" && sex != "M" && sex != "F" && sex != "O" {
			errors["sex"] = "Sex must be M, F or O!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

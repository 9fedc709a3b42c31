package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// RulePayload is the admin form for an auto-enrollment rule. Nil department
// and role filters match every user.
type RulePayload struct {
	DepartmentID *uint   `json:"department_id"`
	Role         *string `json:"role"`
	CourseID     uint    `json:"course_id"`
	DueInDays    *int    `json:"due_in_days"`
	Required     *bool   `json:"required"`
	Active       *bool   `json:"active"`
}

// GetAssignmentRules lists all auto-enrollment rules.
func GetAssignmentRules(c *fiber.Ctx) error {
	var rules []courseModels.CourseAssignmentRule
	if err := database.Database.Db.Preload("Course").Order("id asc").Find(&rules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rules!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rules fetched successfully!", rules)
}

// CreateAssignmentRule adds an auto-enrollment rule.
func CreateAssignmentRule(c *fiber.Ctx) error {
	reqData := new(RulePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errs := make(map[string]string)
	if reqData.CourseID == 0 {
		errs["course_id"] = "Course is required!"
	}
	if reqData.Role != nil && *reqData.Role != "" && !models.IsValidRole(*reqData.Role) {
		errs["role"] = "Invalid role!"
	}
	if reqData.DueInDays != nil && *reqData.DueInDays < 0 {
		errs["due_in_days"] = "Due in days must not be negative!"
	}
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	db := database.Database.Db

	if err := db.First(&courseModels.Course{}, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if reqData.DepartmentID != nil {
		if err := db.First(&models.Department{}, *reqData.DepartmentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Department not found!", nil)
		}
	}

	rule := courseModels.CourseAssignmentRule{
		DepartmentID: reqData.DepartmentID,
		Role:         reqData.Role,
		CourseID:     reqData.CourseID,
		DueInDays:    reqData.DueInDays,
		Required:     true,
		Active:       true,
	}
	if reqData.Required != nil {
		rule.Required = *reqData.Required
	}
	if reqData.Active != nil {
		rule.Active = *reqData.Active
	}

	if err := db.Create(&rule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create rule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Rule created.", rule)
}

// DeleteAssignmentRule removes a rule; existing enrollments stay untouched.
func DeleteAssignmentRule(c *fiber.Ctx) error {
	ruleID, err := c.ParamsInt("rule_id")
	if err != nil || ruleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid rule ID!", nil)
	}

	db := database.Database.Db

	var rule courseModels.CourseAssignmentRule
	if err := db.First(&rule, ruleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Rule not found!", nil)
	}

	if err := db.Delete(&rule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete rule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rule deleted.", nil)
}

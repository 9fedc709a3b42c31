package departmentController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetDepartments lists all departments ordered by name.
func GetDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := database.Database.Db.Order("name asc").Find(&departments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch departments!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Departments fetched successfully!", departments)
}

// CreateDepartment adds a department with a unique name.
func CreateDepartment(c *fiber.Ctx) error {
	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	name := strings.TrimSpace(reqData.Name)
	if name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
	}

	db := database.Database.Db
	if err := db.Where("name = ?", name).First(&models.Department{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Department already exists!", nil)
	}

	dept := models.Department{Name: name}
	if err := db.Create(&dept).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create department!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Department created.", dept)
}

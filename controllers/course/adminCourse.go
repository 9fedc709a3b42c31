package courseController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CoursePayload is the admin create/edit form for a course.
type CoursePayload struct {
	Title               string `json:"title"`
	Instructor          string `json:"instructor"`
	DurationMinutes     *int   `json:"duration_minutes"`
	DeliveredByExternal bool   `json:"delivered_by_external"`
	PrerequisiteIDs     []uint `json:"prerequisite_ids"`
}

// GetCourses lists the catalog, filtered by title/instructor search.
func GetCourses(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	db := database.Database.Db
	query := db.Model(&courseModels.Course{}).Order("title asc")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(instructor) LIKE ?", like, like)
	}

	var courses []courseModels.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// CreateCourse adds a course to the catalog.
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	course := courseModels.Course{
		Title:               strings.TrimSpace(reqData.Title),
		Instructor:          strings.TrimSpace(reqData.Instructor),
		DurationMinutes:     reqData.DurationMinutes,
		DeliveredByExternal: reqData.DeliveredByExternal,
	}
	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	if len(reqData.PrerequisiteIDs) > 0 {
		var prereqs []*courseModels.Course
		db.Where("id IN ?", reqData.PrerequisiteIDs).Find(&prereqs)
		if len(prereqs) > 0 {
			db.Model(&course).Association("Prerequisites").Append(prereqs)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created.", course)
}

// UpdateCourse edits a course.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedCourse").(*CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = strings.TrimSpace(reqData.Title)
	course.Instructor = strings.TrimSpace(reqData.Instructor)
	course.DurationMinutes = reqData.DurationMinutes
	course.DeliveredByExternal = reqData.DeliveredByExternal
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated.", course)
}

// DeleteCourse removes a course from the catalog.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted.", nil)
}

package courseController

import (
	"log"
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// AddMaterial attaches a material to a course: either an uploaded file or an
// external video link, depending on the submitted kind.
func AddMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	kind := strings.ToUpper(strings.TrimSpace(c.FormValue("kind")))
	title := strings.TrimSpace(c.FormValue("title"))
	externalURL := strings.TrimSpace(c.FormValue("external_url"))

	material := courseModels.CourseMaterial{
		CourseID:     course.ID,
		Kind:         kind,
		Title:        title,
		UploadedByID: &userID,
	}

	switch kind {
	case courseModels.MaterialKindFile:
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"file": "File is required for Type = File!"})
		}
		storedPath, err := utils.SaveCourseMaterial(fileHeader, course.ID)
		if err != nil {
			log.Printf("Error storing material: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		material.FilePath = storedPath
		material.OriginalName = fileHeader.Filename
		if material.Title == "" {
			name := fileHeader.Filename
			if dot := strings.LastIndex(name, "."); dot > 0 {
				name = name[:dot]
			}
			if len(name) > 200 {
				name = name[:200]
			}
			material.Title = name
		}
	case courseModels.MaterialKindLink:
		if externalURL == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"external_url": "URL is required for Type = Link!"})
		}
		material.ExternalURL = externalURL
	default:
		return middleware.ValidationErrorResponse(c, map[string]string{"kind": "Invalid material type!"})
	}

	if err := db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material saved.", material)
}

// GetMaterials lists a course's materials together with the caller's progress.
func GetMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var materials []courseModels.CourseMaterial
	if err := db.Where("course_id = ?", course.ID).Order("created_at asc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	ids := make([]uint, len(materials))
	for i, m := range materials {
		ids[i] = m.ID
	}
	var progresses []courseModels.MaterialProgress
	db.Where("user_id = ? AND material_id IN ?", userID, ids).Find(&progresses)
	progressMap := make(map[uint]courseModels.MaterialProgress, len(progresses))
	for _, p := range progresses {
		progressMap[p.MaterialID] = p
	}

	type materialRow struct {
		courseModels.CourseMaterial
		DisplayName string `json:"display_name"`
		Percent     int    `json:"percent"`
		IsDone      bool   `json:"is_done"`
	}

	completed := 0
	rows := make([]materialRow, len(materials))
	for i := range materials {
		m := materials[i]
		row := materialRow{CourseMaterial: m, DisplayName: m.DisplayName()}
		if p, ok := progressMap[m.ID]; ok {
			row.Percent = p.Percent
			row.IsDone = p.IsCompleted || p.Percent == 100
		}
		if row.IsDone {
			completed++
		}
		rows[i] = row
	}

	percent := 0
	if len(materials) > 0 {
		percent = int(float64(completed*100)/float64(len(materials)) + 0.5)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", fiber.Map{
		"course":          course,
		"materials":       rows,
		"completed_count": completed,
		"total_count":     len(materials),
		"percent":         percent,
	})
}

// WatchMaterial redirects to the material's stored file or external URL.
func WatchMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	var material courseModels.CourseMaterial
	if err := database.Database.Db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if material.Kind == courseModels.MaterialKindLink && material.ExternalURL != "" {
		return c.Redirect(material.ExternalURL, fiber.StatusFound)
	}
	if material.FilePath != "" {
		return c.Redirect(utils.GetFileURL(material.FilePath), fiber.StatusFound)
	}

	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This material has no file or URL.", nil)
}

// DeleteMaterial removes a material from a course.
func DeleteMaterial(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	materialID := c.Locals("materialID").(int)

	db := database.Database.Db

	var material courseModels.CourseMaterial
	if err := db.Where("id = ? AND course_id = ?", materialID, courseID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if err := db.Delete(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted.", nil)
}

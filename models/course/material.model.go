package course

import (
	"path/filepath"

	"gorm.io/gorm"
)

// Material kinds
const (
	MaterialKindFile = "FILE"
	MaterialKindLink = "LINK"
)

// CourseMaterial is a file uploaded for a course or an external video link.
type CourseMaterial struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Kind         string `json:"kind" gorm:"default:'FILE'"`
	Title        string `json:"title" gorm:"default:''"`
	OriginalName string `json:"original_name" gorm:"default:''"`
	FilePath     string `json:"file_path" gorm:"default:''"`
	ExternalURL  string `json:"external_url" gorm:"default:''"`
	UploadedByID *uint  `json:"uploaded_by_id"`
}

// DisplayName derives the name shown to learners: explicit title first, then
// the uploaded file's original name, then the stored filename, then a generic
// label for untitled links.
func (m *CourseMaterial) DisplayName() string {
	if m.Title != "" {
		return m.Title
	}
	if m.OriginalName != "" {
		return m.OriginalName
	}
	if m.FilePath != "" {
		return filepath.Base(m.FilePath)
	}
	if m.ExternalURL != "" {
		return "Video"
	}
	return ""
}

// MaterialProgress records how far a user has gotten through one material.
// The (user, material) pair is unique.
type MaterialProgress struct {
	gorm.Model
	UserID              uint `json:"user_id" gorm:"uniqueIndex:idx_material_progress_user_material;not null"`
	MaterialID          uint `json:"material_id" gorm:"uniqueIndex:idx_material_progress_user_material;not null"`
	Percent             int  `json:"percent" gorm:"default:0"` // 0..100
	IsCompleted         bool `json:"is_completed" gorm:"default:false"`
	LastPositionSeconds int  `json:"last_position_seconds" gorm:"default:0"`
}

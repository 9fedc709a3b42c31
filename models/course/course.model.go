package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title               string `json:"title" gorm:"not null"`
	Instructor          string `json:"instructor" gorm:"default:''"`
	DurationMinutes     *int   `json:"duration_minutes"`
	DeliveredByExternal bool   `json:"delivered_by_external" gorm:"default:false"`

	// Optional learning-path ordering; stored only, not enforced anywhere yet
	Prerequisites []*Course `json:"prerequisites,omitempty" gorm:"many2many:course_prerequisites"`
}

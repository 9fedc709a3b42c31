package course

import "gorm.io/gorm"

// CourseAssignmentRule auto-enrolls new users into a course by department
// and/or role. A nil filter matches everyone; a rule with both filters nil
// matches every user.
type CourseAssignmentRule struct {
	gorm.Model
	DepartmentID *uint   `json:"department_id" gorm:"index"`
	Role         *string `json:"role"`
	CourseID     uint    `json:"course_id" gorm:"not null"`
	Course       Course  `json:"course"`
	DueInDays    *int    `json:"due_in_days"`
	Required     bool    `json:"required" gorm:"default:true"`
	Active       bool    `json:"active" gorm:"default:true"`
}

package models

import "gorm.io/gorm"

// Access roles carried on Profile
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleLearner = "LEARNER"
)

// ValidRoles lists the accepted values for Profile.Role
var ValidRoles = []string{RoleAdmin, RoleManager, RoleLearner}

// Profile holds the demographic and access data attached to a User.
// One profile per user; role defaults to LEARNER.
type Profile struct {
	gorm.Model
	UserID       uint        `json:"user_id" gorm:"uniqueIndex;not null"`
	Role         string      `json:"role" gorm:"default:'LEARNER'"`
	DepartmentID *uint       `json:"department_id" gorm:"index"`
	Department   *Department `json:"department,omitempty"`
	Phone        string      `json:"phone" gorm:"default:''"`
	Position     string      `json:"position" gorm:"default:''"`
	Age          *int        `json:"age"`
	Sex          string      `json:"sex" gorm:"default:''"` // M, F, O or empty
}

// IsValidRole reports whether role is one of the accepted role values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

package models

import "gorm.io/gorm"

// Department groups users for manager reporting and auto-enrollment rules
type Department struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

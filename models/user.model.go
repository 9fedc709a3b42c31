package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name        string     `json:"name" gorm:"default:''"`
	Email       string     `json:"email" gorm:"unique;not null"`
	Password    string     `json:"-" gorm:"not null"`
	IsSuperuser bool       `json:"is_superuser" gorm:"default:false"`
	LastLogin   *time.Time `json:"last_login"`
}

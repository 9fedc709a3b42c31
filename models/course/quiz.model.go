package course

import (
	"time"

	"gorm.io/gorm"
)

// Question types
const (
	QuestionMultiple  = "MULTIPLE"
	QuestionTrueFalse = "TRUE_FALSE"
	QuestionShortText = "SHORT_TEXT"
)

// Quiz belongs to a course; pass_score is the percentage threshold.
type Quiz struct {
	gorm.Model
	CourseID         uint   `json:"course_id" gorm:"index;not null"`
	Title            string `json:"title" gorm:"not null"`
	PassScore        int    `json:"pass_score" gorm:"default:70"` // required percentage
	TimeLimitMinutes *int   `json:"time_limit_minutes"`
	AttemptsAllowed  int    `json:"attempts_allowed" gorm:"default:1"`
	Randomize        bool   `json:"randomize" gorm:"default:false"`
	Active           bool   `json:"active" gorm:"default:true"`
}

type Question struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	Text         string `json:"text" gorm:"not null"`
	QuestionType string `json:"question_type" gorm:"default:'MULTIPLE'"`
	Points       int    `json:"points" gorm:"default:1"`
}

type Choice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}

// QuizAttempt is one scored submission of a quiz by a user. Score, Passed and
// FinishedAt are written by grading and treated as immutable history afterwards.
type QuizAttempt struct {
	gorm.Model
	QuizID     uint       `json:"quiz_id" gorm:"index;not null"`
	UserID     uint       `json:"user_id" gorm:"index;not null"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Score      *float64   `json:"score"` // percentage, nil until graded
	Passed     bool       `json:"passed" gorm:"default:false"`
}

type QuizAnswer struct {
	gorm.Model
	AttemptID        uint     `json:"attempt_id" gorm:"index;not null"`
	QuestionID       uint     `json:"question_id" gorm:"not null"`
	Question         Question `json:"question"`
	SelectedChoiceID *uint    `json:"selected_choice_id"`
	SelectedChoice   *Choice  `json:"selected_choice,omitempty"`
	FreeText         string   `json:"free_text" gorm:"default:''"`
}

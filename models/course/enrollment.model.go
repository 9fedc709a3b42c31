package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOverdue    = "OVERDUE"
)

// Enrollment tracks a user's relationship to a course, including progress.
// The (user, course) pair is unique; CompletedAt is set once, on the first
// transition to 100%.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Course   Course `json:"course"`

	EnrolledAt   time.Time  `json:"enrolled_at"`
	Progress     int        `json:"progress" gorm:"default:0"` // 0..100
	Status       string     `json:"status" gorm:"default:'ASSIGNED';index"`
	DueDate      *time.Time `json:"due_date"`
	Required     bool       `json:"required" gorm:"default:true"`
	AutoEnrolled bool       `json:"auto_enrolled" gorm:"default:false"`
	AssignedByID *uint      `json:"assigned_by_id"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// MarkCompleted sets the enrollment to COMPLETED at 100% progress.
// CompletedAt is only written the first time.
func (e *Enrollment) MarkCompleted(now time.Time) {
	e.Status = StatusCompleted
	e.Progress = 100
	if e.CompletedAt == nil {
		t := now
		e.CompletedAt = &t
	}
}

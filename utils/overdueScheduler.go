package utils

import (
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeOverdueScheduler starts the nightly sweep that flags dated,
// unfinished enrollments as overdue. Completed enrollments are never touched,
// even when their due date has passed.
func InitializeOverdueScheduler() {
	log.Println("[OVERDUE-SCHEDULER] Initializing overdue scheduler...")

	c := cron.New()

	c.AddFunc("0 6 * * *", func() {
		log.Println("[OVERDUE-SCHEDULER] Running daily overdue check...")
		MarkOverdueEnrollments()
	})

	c.Start()
	log.Println("[OVERDUE-SCHEDULER] Overdue scheduler started - runs daily at 6 AM")
}

// MarkOverdueEnrollments flips past-due, unfinished enrollments to OVERDUE.
func MarkOverdueEnrollments() {
	db := database.Database.Db
	today := time.Now().Truncate(24 * time.Hour)

	result := db.Model(&courseModels.Enrollment{}).
		Where("due_date IS NOT NULL AND due_date < ? AND progress < 100", today).
		Where("status IN ?", []string{courseModels.StatusAssigned, courseModels.StatusInProgress}).
		Update("status", courseModels.StatusOverdue)

	if result.Error != nil {
		log.Printf("[OVERDUE-SCHEDULER] Error marking overdue enrollments: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[OVERDUE-SCHEDULER] Marked %d enrollments overdue", result.RowsAffected)
	}
}

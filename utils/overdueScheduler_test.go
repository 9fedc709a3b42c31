package utils

import (
	"testing"
	"time"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMarkOverdueEnrollments(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	old := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { database.Database = old })

	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)

	enrollments := []courseModels.Enrollment{
		{UserID: 1, CourseID: 1, Status: courseModels.StatusAssigned, DueDate: &past},
		{UserID: 1, CourseID: 2, Status: courseModels.StatusInProgress, Progress: 40, DueDate: &past},
		{UserID: 1, CourseID: 3, Status: courseModels.StatusCompleted, Progress: 100, DueDate: &past},
		{UserID: 1, CourseID: 4, Status: courseModels.StatusAssigned, DueDate: &future},
		{UserID: 1, CourseID: 5, Status: courseModels.StatusAssigned},
	}
	for i := range enrollments {
		require.NoError(t, db.Create(&enrollments[i]).Error)
	}

	MarkOverdueEnrollments()

	var statuses []string
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Order("course_id asc").Pluck("status", &statuses).Error)

	assert.Equal(t, []string{
		courseModels.StatusOverdue,
		courseModels.StatusOverdue,
		courseModels.StatusCompleted,
		courseModels.StatusAssigned,
		courseModels.StatusAssigned,
	}, statuses)
}

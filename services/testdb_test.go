package services

import (
	"testing"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. A single
// connection keeps every session on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

// freezeClock pins the package clock for the duration of a test.
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

func createUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createProfile(t *testing.T, db *gorm.DB, userID uint, role string, departmentID *uint) *models.Profile {
	t.Helper()
	profile := models.Profile{UserID: userID, Role: role, DepartmentID: departmentID}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile for user %d: %v", userID, err)
	}
	return &profile
}

func createDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()
	dept := models.Department{Name: name}
	if err := db.Create(&dept).Error; err != nil {
		t.Fatalf("failed to create department %s: %v", name, err)
	}
	return &dept
}

func createCourse(t *testing.T, db *gorm.DB, title string) *courseModels.Course {
	t.Helper()
	course := courseModels.Course{Title: title, Instructor: "Instructor"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course %s: %v", title, err)
	}
	return &course
}

func createMaterial(t *testing.T, db *gorm.DB, courseID uint, title string) *courseModels.CourseMaterial {
	t.Helper()
	material := courseModels.CourseMaterial{
		CourseID:    courseID,
		Kind:        courseModels.MaterialKindLink,
		Title:       title,
		ExternalURL: "https://videos.example.com/" + title,
	}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material %s: %v", title, err)
	}
	return &material
}

package services

import (
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMatches(t *testing.T) {
	deptA := uint(1)
	deptB := uint(2)
	manager := models.RoleManager

	tests := []struct {
		name    string
		rule    courseModels.CourseAssignmentRule
		profile *models.Profile
		want    bool
	}{
		{
			name: "open rule matches user without profile",
			rule: courseModels.CourseAssignmentRule{},
			want: true,
		},
		{
			name:    "open rule matches any profile",
			rule:    courseModels.CourseAssignmentRule{},
			profile: &models.Profile{Role: models.RoleLearner, DepartmentID: &deptA},
			want:    true,
		},
		{
			name:    "department filter matches",
			rule:    courseModels.CourseAssignmentRule{DepartmentID: &deptA},
			profile: &models.Profile{Role: models.RoleLearner, DepartmentID: &deptA},
			want:    true,
		},
		{
			name:    "department filter rejects other department",
			rule:    courseModels.CourseAssignmentRule{DepartmentID: &deptA},
			profile: &models.Profile{Role: models.RoleLearner, DepartmentID: &deptB},
			want:    false,
		},
		{
			name: "department filter rejects user without profile",
			rule: courseModels.CourseAssignmentRule{DepartmentID: &deptA},
			want: false,
		},
		{
			name:    "role filter matches",
			rule:    courseModels.CourseAssignmentRule{Role: &manager},
			profile: &models.Profile{Role: models.RoleManager},
			want:    true,
		},
		{
			name:    "role filter rejects other role",
			rule:    courseModels.CourseAssignmentRule{Role: &manager},
			profile: &models.Profile{Role: models.RoleLearner},
			want:    false,
		},
		{
			name:    "both filters must match",
			rule:    courseModels.CourseAssignmentRule{DepartmentID: &deptA, Role: &manager},
			profile: &models.Profile{Role: models.RoleManager, DepartmentID: &deptB},
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleMatches(&tt.rule, tt.profile))
		})
	}
}

func TestAssignCourseCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Safety Basics")

	first, created, err := AssignCourse(db, user.ID, course.ID, AssignOptions{Required: true})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, courseModels.StatusAssigned, first.Status)

	second, created, err := AssignCourse(db, user.ID, course.ID, AssignOptions{Required: true})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&courseModels.Enrollment{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAssignCourseBackfillsDueDate(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Safety Basics")

	_, _, err := AssignCourse(db, user.ID, course.ID, AssignOptions{Required: true})
	require.NoError(t, err)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	enrollment, created, err := AssignCourse(db, user.ID, course.ID, AssignOptions{DueDate: &due})
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, enrollment.DueDate)
	assert.True(t, enrollment.DueDate.Equal(due))

	// An existing due date is never overwritten
	later := due.AddDate(0, 1, 0)
	enrollment, _, err = AssignCourse(db, user.ID, course.ID, AssignOptions{DueDate: &later})
	require.NoError(t, err)
	assert.True(t, enrollment.DueDate.Equal(due))
}

func TestAssignCourseWithFullProgress(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Safety Basics")

	enrollment, created, err := AssignCourse(db, user.ID, course.ID, AssignOptions{Progress: 100})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, courseModels.StatusCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestAssignByRules(t *testing.T) {
	db := newTestDB(t)
	freezeClock(t, time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))

	dept := createDepartment(t, db, "Engineering")
	other := createDepartment(t, db, "Sales")

	deptCourse := createCourse(t, db, "Secure Coding")
	everyoneCourse := createCourse(t, db, "Onboarding")
	salesCourse := createCourse(t, db, "Negotiation")

	days := 7
	require.NoError(t, db.Create(&courseModels.CourseAssignmentRule{
		DepartmentID: &dept.ID, CourseID: deptCourse.ID, DueInDays: &days, Required: true, Active: true,
	}).Error)
	require.NoError(t, db.Create(&courseModels.CourseAssignmentRule{
		CourseID: everyoneCourse.ID, Required: true, Active: true,
	}).Error)
	require.NoError(t, db.Create(&courseModels.CourseAssignmentRule{
		DepartmentID: &other.ID, CourseID: salesCourse.ID, Required: true, Active: true,
	}).Error)
	// Inactive rules are ignored entirely
	require.NoError(t, db.Create(&courseModels.CourseAssignmentRule{
		CourseID: salesCourse.ID, Required: true, Active: false,
	}).Error)

	user := createUser(t, db, "Ada", "ada@example.com")
	createProfile(t, db, user.ID, models.RoleLearner, &dept.ID)

	touched, err := AssignByRules(db, user)
	require.NoError(t, err)
	assert.Len(t, touched, 2)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, deptCourse.ID).First(&enrollment).Error)
	assert.True(t, enrollment.AutoEnrolled)
	require.NotNil(t, enrollment.DueDate)
	assert.True(t, enrollment.DueDate.Equal(time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)))

	var salesEnrollment courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ?", user.ID, salesCourse.ID).First(&salesEnrollment).Error
	assert.Error(t, err)

	// Re-running does not duplicate enrollments
	_, err = AssignByRules(db, user)
	require.NoError(t, err)
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestBulkEnrollDepartment(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "Engineering")
	course := createCourse(t, db, "Secure Coding")
	admin := createUser(t, db, "Admin", "admin@example.com")

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com"} {
		u := createUser(t, db, "User", email)
		createProfile(t, db, u.ID, models.RoleLearner, &dept.ID)
		// Three of the five are already enrolled
		if i < 3 {
			_, _, err := AssignCourse(db, u.ID, course.ID, AssignOptions{Required: true})
			require.NoError(t, err)
		}
	}

	created, skipped, err := BulkEnrollDepartment(db, dept.ID, course.ID, 0, &admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 3, skipped)
}

func TestBulkEnrollClampsProgress(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "Engineering")
	course := createCourse(t, db, "Secure Coding")
	u := createUser(t, db, "User", "a@example.com")
	createProfile(t, db, u.ID, models.RoleLearner, &dept.ID)

	created, _, err := BulkEnrollDepartment(db, dept.ID, course.ID, 250, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, courseModels.StatusCompleted, enrollment.Status)
}

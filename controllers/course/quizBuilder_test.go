package courseController

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

// updateQuestion drives UpdateQuestion the way the route does, with the
// validated payload already in Locals.
func updateQuestion(t *testing.T, questionID uint, payload *QuestionPayload) int {
	t.Helper()

	app := fiber.New()
	app.Put("/questions", func(c *fiber.Ctx) error {
		c.Locals("questionID", int(questionID))
		c.Locals("validatedQuestion", payload)
		return c.Next()
	}, UpdateQuestion)

	req := httptest.NewRequest(http.MethodPut, "/questions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpdateQuestionReplacesChoices(t *testing.T) {
	db := setupTestDB(t)

	quiz := courseModels.Quiz{CourseID: 1, Title: "Check", PassScore: 70, AttemptsAllowed: 1, Active: true}
	require.NoError(t, db.Create(&quiz).Error)
	question := courseModels.Question{QuizID: quiz.ID, Text: "Old?", QuestionType: courseModels.QuestionMultiple, Points: 1}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&[]courseModels.Choice{
		{QuestionID: question.ID, Text: "old A", IsCorrect: true},
		{QuestionID: question.ID, Text: "old B"},
	}).Error)

	correct := 3
	status := updateQuestion(t, question.ID, &QuestionPayload{
		QuestionType:  courseModels.QuestionMultiple,
		Text:          "New?",
		Points:        2,
		Choices:       []string{"new A", "new B", "new C"},
		CorrectChoice: &correct,
	})
	assert.Equal(t, fiber.StatusOK, status)

	var updated courseModels.Question
	require.NoError(t, db.First(&updated, question.ID).Error)
	assert.Equal(t, "New?", updated.Text)
	assert.Equal(t, 2, updated.Points)

	var choices []courseModels.Choice
	require.NoError(t, db.Where("question_id = ?", question.ID).Order("id asc").Find(&choices).Error)
	require.Len(t, choices, 3)
	assert.Equal(t, "new A", choices[0].Text)
	assert.False(t, choices[0].IsCorrect)
	assert.Equal(t, "new C", choices[2].Text)
	assert.True(t, choices[2].IsCorrect)
}

func TestUpdateQuestionKeepsChoicesOnceAnswered(t *testing.T) {
	db := setupTestDB(t)

	quiz := courseModels.Quiz{CourseID: 1, Title: "Check", PassScore: 70, AttemptsAllowed: 1, Active: true}
	require.NoError(t, db.Create(&quiz).Error)
	question := courseModels.Question{QuizID: quiz.ID, Text: "Q?", QuestionType: courseModels.QuestionMultiple, Points: 1}
	require.NoError(t, db.Create(&question).Error)
	choice := courseModels.Choice{QuestionID: question.ID, Text: "A", IsCorrect: true}
	require.NoError(t, db.Create(&choice).Error)
	require.NoError(t, db.Create(&courseModels.Choice{QuestionID: question.ID, Text: "B"}).Error)

	attempt := courseModels.QuizAttempt{QuizID: quiz.ID, UserID: 1}
	require.NoError(t, db.Create(&attempt).Error)
	require.NoError(t, db.Create(&courseModels.QuizAnswer{
		AttemptID: attempt.ID, QuestionID: question.ID, SelectedChoiceID: &choice.ID,
	}).Error)

	correct := 1
	status := updateQuestion(t, question.ID, &QuestionPayload{
		QuestionType:  courseModels.QuestionMultiple,
		Text:          "Reworded?",
		Points:        1,
		Choices:       []string{"X", "Y"},
		CorrectChoice: &correct,
	})
	assert.Equal(t, fiber.StatusOK, status)

	// Text updates, the answered choice structure does not
	var updated courseModels.Question
	require.NoError(t, db.First(&updated, question.ID).Error)
	assert.Equal(t, "Reworded?", updated.Text)

	var texts []string
	require.NoError(t, db.Model(&courseModels.Choice{}).
		Where("question_id = ?", question.ID).Order("id asc").Pluck("text", &texts).Error)
	assert.Equal(t, []string{"A", "B"}, texts)
}

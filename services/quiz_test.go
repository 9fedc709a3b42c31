package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuiz(t *testing.T, db *gorm.DB, courseID uint, passScore int) *courseModels.Quiz {
	t.Helper()
	quiz := courseModels.Quiz{CourseID: courseID, Title: "Final Check", PassScore: passScore, AttemptsAllowed: 3, Active: true}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

// createChoiceQuestion adds a question with one correct and one wrong choice,
// returning both choice IDs.
func createChoiceQuestion(t *testing.T, db *gorm.DB, quizID uint, points int) (correct, wrong uint) {
	t.Helper()
	question := courseModels.Question{QuizID: quizID, Text: "?", QuestionType: courseModels.QuestionMultiple, Points: points}
	require.NoError(t, db.Create(&question).Error)
	right := courseModels.Choice{QuestionID: question.ID, Text: "right", IsCorrect: true}
	require.NoError(t, db.Create(&right).Error)
	bad := courseModels.Choice{QuestionID: question.ID, Text: "wrong"}
	require.NoError(t, db.Create(&bad).Error)
	return right.ID, bad.ID
}

func startAttempt(t *testing.T, db *gorm.DB, quizID, userID uint) *courseModels.QuizAttempt {
	t.Helper()
	attempt := courseModels.QuizAttempt{QuizID: quizID, UserID: userID, StartedAt: now()}
	require.NoError(t, db.Create(&attempt).Error)
	return &attempt
}

func answerChoice(t *testing.T, db *gorm.DB, attemptID, questionID uint, choiceID *uint) {
	t.Helper()
	answer := courseModels.QuizAnswer{AttemptID: attemptID, QuestionID: questionID, SelectedChoiceID: choiceID}
	require.NoError(t, db.Create(&answer).Error)
}

func TestGradeAttemptWithoutQuestions(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 70)

	attempt := startAttempt(t, db, quiz.ID, user.ID)
	require.NoError(t, GradeAttempt(db, attempt))

	require.NotNil(t, attempt.Score)
	assert.Equal(t, 0.0, *attempt.Score)
	assert.False(t, attempt.Passed)
	assert.NotNil(t, attempt.FinishedAt)
}

func TestGradeAttemptWeightedScore(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 60)

	c1, _ := createChoiceQuestion(t, db, quiz.ID, 1)
	c2, _ := createChoiceQuestion(t, db, quiz.ID, 2)
	_, w3 := createChoiceQuestion(t, db, quiz.ID, 3)

	attempt := startAttempt(t, db, quiz.ID, user.ID)
	var q1, q2, q3 courseModels.Choice
	require.NoError(t, db.First(&q1, c1).Error)
	require.NoError(t, db.First(&q2, c2).Error)
	require.NoError(t, db.First(&q3, w3).Error)
	answerChoice(t, db, attempt.ID, q1.QuestionID, &c1)
	answerChoice(t, db, attempt.ID, q2.QuestionID, &c2)
	answerChoice(t, db, attempt.ID, q3.QuestionID, &w3)

	require.NoError(t, GradeAttempt(db, attempt))

	// 1 + 2 of 6 points
	require.NotNil(t, attempt.Score)
	assert.Equal(t, 50.0, *attempt.Score)
	assert.False(t, attempt.Passed)
}

func TestGradeAttemptPassCompletesEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 50)

	c1, _ := createChoiceQuestion(t, db, quiz.ID, 1)

	_, _, err := AssignCourse(db, user.ID, course.ID, AssignOptions{Required: true})
	require.NoError(t, err)

	attempt := startAttempt(t, db, quiz.ID, user.ID)
	var right courseModels.Choice
	require.NoError(t, db.First(&right, c1).Error)
	answerChoice(t, db, attempt.ID, right.QuestionID, &c1)

	require.NoError(t, GradeAttempt(db, attempt))
	assert.True(t, attempt.Passed)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.StatusCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestGradeAttemptPassWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 50)

	c1, _ := createChoiceQuestion(t, db, quiz.ID, 1)

	attempt := startAttempt(t, db, quiz.ID, user.ID)
	var right courseModels.Choice
	require.NoError(t, db.First(&right, c1).Error)
	answerChoice(t, db, attempt.ID, right.QuestionID, &c1)

	// No enrollment exists; grading still succeeds
	require.NoError(t, GradeAttempt(db, attempt))
	assert.True(t, attempt.Passed)
}

func TestGradeAttemptShortTextScoresZero(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 70)

	question := courseModels.Question{QuizID: quiz.ID, Text: "Explain.", QuestionType: courseModels.QuestionShortText, Points: 5}
	require.NoError(t, db.Create(&question).Error)

	attempt := startAttempt(t, db, quiz.ID, user.ID)
	answer := courseModels.QuizAnswer{AttemptID: attempt.ID, QuestionID: question.ID, FreeText: "a thorough answer"}
	require.NoError(t, db.Create(&answer).Error)

	require.NoError(t, GradeAttempt(db, attempt))
	require.NotNil(t, attempt.Score)
	assert.Equal(t, 0.0, *attempt.Score)
	assert.False(t, attempt.Passed)
}

func TestAttemptsUsed(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ada", "ada@example.com")
	other := createUser(t, db, "Bob", "bob@example.com")
	course := createCourse(t, db, "Course")
	quiz := createQuiz(t, db, course.ID, 70)

	startAttempt(t, db, quiz.ID, user.ID)
	startAttempt(t, db, quiz.ID, user.ID)
	startAttempt(t, db, quiz.ID, other.ID)

	used, err := AttemptsUsed(db, quiz.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, used)
}

package courseController

import (
	"math/rand"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitPayload carries one learner's answers for a whole quiz.
type SubmitPayload struct {
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// AnswerPayload is a single question's answer: a choice ID for MULTIPLE and
// TRUE_FALSE questions, free text for SHORT_TEXT.
type AnswerPayload struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	ChoiceID   *uint  `json:"choice_id"`
	FreeText   string `json:"free_text" validate:"max=4000"`
}

// GetCourseQuizzes lists a course's active quizzes with the caller's attempt
// history.
func GetCourseQuizzes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var quizzes []courseModels.Quiz
	if err := db.Where("course_id = ? AND active = ?", course.ID, true).
		Order("id asc").Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	type quizRow struct {
		courseModels.Quiz
		AttemptsUsed int                        `json:"attempts_used"`
		AttemptsLeft int                        `json:"attempts_left"`
		LastScore    *float64                   `json:"last_score"`
		LastPassed   bool                       `json:"last_passed"`
		Attempts     []courseModels.QuizAttempt `json:"attempts"`
	}

	rows := make([]quizRow, len(quizzes))
	for i, quiz := range quizzes {
		row := quizRow{Quiz: quiz}

		var attempts []courseModels.QuizAttempt
		db.Where("quiz_id = ? AND user_id = ?", quiz.ID, userID).
			Order("started_at desc").Limit(5).Find(&attempts)
		row.Attempts = attempts

		used, err := services.AttemptsUsed(db, quiz.ID, userID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
		}
		row.AttemptsUsed = used
		row.AttemptsLeft = quiz.AttemptsAllowed - used
		if row.AttemptsLeft < 0 {
			row.AttemptsLeft = 0
		}
		if len(attempts) > 0 {
			row.LastScore = attempts[0].Score
			row.LastPassed = attempts[0].Passed
		}
		rows[i] = row
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"course":  course,
		"quizzes": rows,
	})
}

// TakeQuiz returns the quiz's questions and choices for answering. Correct
// flags are stripped; question order is shuffled when the quiz asks for it.
func TakeQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}
	if !quiz.Active {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This quiz is not active.", nil)
	}

	used, err := services.AttemptsUsed(db, quiz.ID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}
	if used >= quiz.AttemptsAllowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No attempts left for this quiz.", nil)
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}
	if quiz.Randomize {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	type choiceRow struct {
		ID   uint   `json:"id"`
		Text string `json:"text"`
	}
	type questionRow struct {
		ID           uint        `json:"id"`
		Text         string      `json:"text"`
		QuestionType string      `json:"question_type"`
		Points       int         `json:"points"`
		Choices      []choiceRow `json:"choices"`
	}

	rows := make([]questionRow, len(questions))
	for i, q := range questions {
		rows[i] = questionRow{
			ID:           q.ID,
			Text:         q.Text,
			QuestionType: q.QuestionType,
			Points:       q.Points,
		}
		var choices []courseModels.Choice
		db.Where("question_id = ?", q.ID).Order("id asc").Find(&choices)
		for _, ch := range choices {
			rows[i].Choices = append(rows[i].Choices, choiceRow{ID: ch.ID, Text: ch.Text})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":          quiz,
		"questions":     rows,
		"attempts_used": used,
		"attempts_left": quiz.AttemptsAllowed - used,
	})
}

// SubmitQuiz records a new attempt with its answers, grades it and returns
// the outcome. The attempt limit is enforced here as well, so a stale take
// page cannot sneak an extra attempt through.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)
	reqData, ok := c.Locals("validatedSubmit").(*SubmitPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}
	if !quiz.Active {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This quiz is not active.", nil)
	}

	used, err := services.AttemptsUsed(db, quiz.ID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}
	if used >= quiz.AttemptsAllowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No attempts left for this quiz.", nil)
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}
	questionMap := make(map[uint]courseModels.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	tx := db.Begin()

	attempt := courseModels.QuizAttempt{
		QuizID:    quiz.ID,
		UserID:    userID,
		StartedAt: time.Now(),
	}
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	for _, a := range reqData.Answers {
		question, ok := questionMap[a.QuestionID]
		if !ok {
			continue // answers for foreign questions are dropped
		}

		answer := courseModels.QuizAnswer{
			AttemptID:  attempt.ID,
			QuestionID: question.ID,
		}
		switch question.QuestionType {
		case courseModels.QuestionMultiple, courseModels.QuestionTrueFalse:
			if a.ChoiceID != nil {
				var choice courseModels.Choice
				if err := tx.Where("id = ? AND question_id = ?", *a.ChoiceID, question.ID).
					First(&choice).Error; err == nil {
					answer.SelectedChoiceID = &choice.ID
				}
			}
		case courseModels.QuestionShortText:
			answer.FreeText = strings.TrimSpace(a.FreeText)
		}

		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
		}
	}

	tx.Commit()

	if err := services.GradeAttempt(db, &attempt); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade quiz!", nil)
	}

	if attempt.Passed {
		var user models.User
		var course courseModels.Course
		if db.First(&user, userID).Error == nil && db.First(&course, quiz.CourseID).Error == nil {
			utils.SendCourseCompletedEmail(user.Email, user.Name, course.Title)
		}
	}

	attemptsLeft := quiz.AttemptsAllowed - used - 1
	if attemptsLeft < 0 {
		attemptsLeft = 0
	}

	msg := "Quiz submitted. Better luck next time!"
	if attempt.Passed {
		msg = "Quiz submitted. You passed!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, fiber.Map{
		"attempt":       attempt,
		"score":         attempt.Score,
		"passed":        attempt.Passed,
		"pass_score":    quiz.PassScore,
		"attempts_left": attemptsLeft,
	})
}

// GetAttemptResult shows a graded attempt with per-question correctness.
// Only the attempt's owner can view it.
func GetAttemptResult(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("attempt_id")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt ID!", nil)
	}

	db := database.Database.Db

	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ?", attemptID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.First(&quiz, attempt.QuizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var answers []courseModels.QuizAnswer
	if err := db.Preload("Question").Preload("SelectedChoice").
		Where("attempt_id = ?", attempt.ID).Find(&answers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch result!", nil)
	}

	type answerRow struct {
		QuestionText string `json:"question_text"`
		QuestionType string `json:"question_type"`
		Points       int    `json:"points"`
		Selected     string `json:"selected"`
		FreeText     string `json:"free_text,omitempty"`
		Correct      bool   `json:"correct"`
	}

	rows := make([]answerRow, len(answers))
	for i, ans := range answers {
		row := answerRow{
			QuestionText: ans.Question.Text,
			QuestionType: ans.Question.QuestionType,
			Points:       ans.Question.Points,
			FreeText:     ans.FreeText,
		}
		if ans.SelectedChoice != nil {
			row.Selected = ans.SelectedChoice.Text
			row.Correct = ans.SelectedChoice.IsCorrect
		}
		rows[i] = row
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", fiber.Map{
		"quiz":    quiz,
		"attempt": attempt,
		"answers": rows,
	})
}

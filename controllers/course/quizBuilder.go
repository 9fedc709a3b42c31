package courseController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// QuizPayload is the admin form for creating a quiz.
type QuizPayload struct {
	Title            string `json:"title" validate:"required,max=200"`
	PassScore        *int   `json:"pass_score" validate:"omitempty,min=0,max=100"`
	AttemptsAllowed  *int   `json:"attempts_allowed" validate:"omitempty,min=1"`
	TimeLimitMinutes *int   `json:"time_limit_minutes" validate:"omitempty,min=1"`
	Randomize        bool   `json:"randomize"`
	Active           *bool  `json:"active"`
}

// QuestionPayload is the admin form for adding a question. MULTIPLE questions
// carry their choices inline; TRUE_FALSE derives a fixed True/False pair;
// SHORT_TEXT has no choices.
type QuestionPayload struct {
	QuestionType  string   `json:"question_type" validate:"required,oneof=MULTIPLE TRUE_FALSE SHORT_TEXT"`
	Text          string   `json:"text" validate:"required,max=2000"`
	Points        int      `json:"points" validate:"required,min=1"`
	Choices       []string `json:"choices" validate:"omitempty,max=4,dive,max=300"`
	CorrectChoice *int     `json:"correct_choice"` // 1-based index into Choices
	TrueIsCorrect *bool    `json:"true_is_correct"`
}

// CreateQuiz adds a quiz to a course.
func CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedQuiz").(*QuizPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	quiz := courseModels.Quiz{
		CourseID:         course.ID,
		Title:            strings.TrimSpace(reqData.Title),
		PassScore:        70,
		AttemptsAllowed:  1,
		TimeLimitMinutes: reqData.TimeLimitMinutes,
		Randomize:        reqData.Randomize,
		Active:           true,
	}
	if reqData.PassScore != nil {
		quiz.PassScore = *reqData.PassScore
	}
	if reqData.AttemptsAllowed != nil {
		quiz.AttemptsAllowed = *reqData.AttemptsAllowed
	}
	if reqData.Active != nil {
		quiz.Active = *reqData.Active
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created. Now add questions.", quiz)
}

// AddQuestion appends a question with its choices to a quiz. All writes go
// through a transaction: a bad choice set leaves nothing behind.
func AddQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)
	reqData, ok := c.Locals("validatedQuestion").(*QuestionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	question := courseModels.Question{
		QuizID:       quiz.ID,
		Text:         strings.TrimSpace(reqData.Text),
		QuestionType: reqData.QuestionType,
		Points:       reqData.Points,
	}

	tx := db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	switch reqData.QuestionType {
	case courseModels.QuestionMultiple:
		correctIdx := *reqData.CorrectChoice - 1
		for idx, text := range reqData.Choices {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			choice := courseModels.Choice{
				QuestionID: question.ID,
				Text:       text,
				IsCorrect:  idx == correctIdx,
			}
			if err := tx.Create(&choice).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create choices!", nil)
			}
		}
	case courseModels.QuestionTrueFalse:
		trueIsCorrect := reqData.TrueIsCorrect != nil && *reqData.TrueIsCorrect
		pair := []courseModels.Choice{
			{QuestionID: question.ID, Text: "True", IsCorrect: trueIsCorrect},
			{QuestionID: question.ID, Text: "False", IsCorrect: !trueIsCorrect},
		}
		if err := tx.Create(&pair).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create choices!", nil)
		}
	}
	// SHORT_TEXT creates no choices; graded manually later

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added.", question)
}

// GetQuestions lists a quiz's questions with choices, for management.
func GetQuestions(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type questionRow struct {
		courseModels.Question
		Choices    []courseModels.Choice `json:"choices"`
		HasAnswers bool                  `json:"has_answers"`
	}

	rows := make([]questionRow, len(questions))
	for i, q := range questions {
		rows[i] = questionRow{Question: q}
		db.Where("question_id = ?", q.ID).Order("id asc").Find(&rows[i].Choices)
		var answerCount int64
		db.Model(&courseModels.QuizAnswer{}).Where("question_id = ?", q.ID).Count(&answerCount)
		rows[i].HasAnswers = answerCount > 0
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": rows,
	})
}

// UpdateQuestion edits a question's text and points. The choice structure is
// only mutable while the question has no recorded answers.
func UpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)
	reqData, ok := c.Locals("validatedQuestion").(*QuestionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if text := strings.TrimSpace(reqData.Text); text != "" {
		question.Text = text
	}
	if reqData.Points > 0 {
		question.Points = reqData.Points
	}
	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	var answerCount int64
	db.Model(&courseModels.QuizAnswer{}).Where("question_id = ?", question.ID).Count(&answerCount)

	if answerCount == 0 {
		switch question.QuestionType {
		case courseModels.QuestionMultiple:
			if len(reqData.Choices) > 0 && reqData.CorrectChoice != nil {
				tx := db.Begin()
				if err := tx.Where("question_id = ?", question.ID).Delete(&courseModels.Choice{}).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update choices!", nil)
				}
				correctIdx := *reqData.CorrectChoice - 1
				for idx, text := range reqData.Choices {
					text = strings.TrimSpace(text)
					if text == "" {
						continue
					}
					choice := courseModels.Choice{
						QuestionID: question.ID,
						Text:       text,
						IsCorrect:  idx == correctIdx,
					}
					if err := tx.Create(&choice).Error; err != nil {
						tx.Rollback()
						return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update choices!", nil)
					}
				}
				tx.Commit()
			}
		case courseModels.QuestionTrueFalse:
			if reqData.TrueIsCorrect != nil {
				tx := db.Begin()
				if err := tx.Where("question_id = ?", question.ID).Delete(&courseModels.Choice{}).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update choices!", nil)
				}
				pair := []courseModels.Choice{
					{QuestionID: question.ID, Text: "True", IsCorrect: *reqData.TrueIsCorrect},
					{QuestionID: question.ID, Text: "False", IsCorrect: !*reqData.TrueIsCorrect},
				}
				if err := tx.Create(&pair).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update choices!", nil)
				}
				tx.Commit()
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated.", question)
}

// DeleteQuestion removes a question, refused once attempts have answered it.
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	db := database.Database.Db

	var question courseModels.Question
	if err := db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	var answerCount int64
	db.Model(&courseModels.QuizAnswer{}).Where("question_id = ?", question.ID).Count(&answerCount)
	if answerCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete this question: it already has answers!", nil)
	}

	tx := db.Begin()
	tx.Where("question_id = ?", question.ID).Delete(&courseModels.Choice{})
	if err := tx.Delete(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted.", nil)
}

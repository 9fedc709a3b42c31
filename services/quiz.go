package services

import (
	"errors"
	"math"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// GradeAttempt scores a submitted attempt against its quiz's questions.
//
// MULTIPLE and TRUE_FALSE answers earn the question's points when the
// selected choice is correct; SHORT_TEXT answers always score 0 (manual
// grading is deferred). The score is a percentage of the total point weight,
// rounded to two decimals. On pass the matching enrollment, if any, is marked
// completed; a missing enrollment is not an error.
func GradeAttempt(db *gorm.DB, attempt *courseModels.QuizAttempt) error {
	var quiz courseModels.Quiz
	if err := db.First(&quiz, attempt.QuizID).Error; err != nil {
		return err
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Find(&questions).Error; err != nil {
		return err
	}

	totalPoints := 0
	for _, q := range questions {
		totalPoints += q.Points
	}
	if totalPoints == 0 {
		totalPoints = 1 // quiz without questions grades to 0%, not a division error
	}

	var answers []courseModels.QuizAnswer
	if err := db.Preload("Question").Preload("SelectedChoice").
		Where("attempt_id = ?", attempt.ID).Find(&answers).Error; err != nil {
		return err
	}

	obtained := 0
	for _, ans := range answers {
		switch ans.Question.QuestionType {
		case courseModels.QuestionMultiple, courseModels.QuestionTrueFalse:
			if ans.SelectedChoice != nil && ans.SelectedChoice.IsCorrect {
				obtained += ans.Question.Points
			}
		}
	}

	score := math.Round(100*float64(obtained)/float64(totalPoints)*100) / 100
	finished := now()
	attempt.Score = &score
	attempt.Passed = score >= float64(quiz.PassScore)
	attempt.FinishedAt = &finished
	if err := db.Model(attempt).Select("score", "passed", "finished_at").
		Updates(map[string]interface{}{
			"score":       attempt.Score,
			"passed":      attempt.Passed,
			"finished_at": attempt.FinishedAt,
		}).Error; err != nil {
		return err
	}

	if !attempt.Passed {
		return nil
	}

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", attempt.UserID, quiz.CourseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // grading succeeds without the completion side effect
	}
	if err != nil {
		return err
	}

	enrollment.MarkCompleted(now())
	return db.Model(&enrollment).Select("status", "progress", "completed_at").
		Updates(map[string]interface{}{
			"status":       enrollment.Status,
			"progress":     enrollment.Progress,
			"completed_at": enrollment.CompletedAt,
		}).Error
}

// AttemptsUsed counts a user's attempts for a quiz.
func AttemptsUsed(db *gorm.DB, quizID, userID uint) (int, error) {
	var used int64
	err := db.Model(&courseModels.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&used).Error
	return int(used), err
}

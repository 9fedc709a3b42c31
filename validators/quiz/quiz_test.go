package quizValidator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	courseController "lms/controllers/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postQuestion runs a payload through QuestionForm and reports the response
// status plus whether the request reached the handler with a validated payload.
func postQuestion(t *testing.T, payload map[string]interface{}) (int, bool) {
	t.Helper()

	app := fiber.New()
	reached := false
	app.Post("/questions", QuestionForm(), func(c *fiber.Ctx) error {
		_, reached = c.Locals("validatedQuestion").(*courseController.QuestionPayload)
		return c.SendStatus(fiber.StatusOK)
	})

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/questions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode, reached
}

func TestQuestionFormMultipleChoiceRules(t *testing.T) {
	base := func() map[string]interface{} {
		return map[string]interface{}{
			"question_type": "MULTIPLE",
			"text":          "Pick one.",
			"points":        1,
		}
	}

	t.Run("valid payload passes", func(t *testing.T) {
		payload := base()
		payload["choices"] = []string{"A", "B", "C"}
		payload["correct_choice"] = 2
		status, reached := postQuestion(t, payload)
		assert.Equal(t, fiber.StatusOK, status)
		assert.True(t, reached)
	})

	t.Run("blank correct choice rejected", func(t *testing.T) {
		payload := base()
		payload["choices"] = []string{"A", "   ", "B"}
		payload["correct_choice"] = 2
		status, reached := postQuestion(t, payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.False(t, reached)
	})

	t.Run("fewer than two choices rejected", func(t *testing.T) {
		payload := base()
		payload["choices"] = []string{"A", "  "}
		payload["correct_choice"] = 1
		status, reached := postQuestion(t, payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.False(t, reached)
	})

	t.Run("missing correct choice rejected", func(t *testing.T) {
		payload := base()
		payload["choices"] = []string{"A", "B"}
		status, reached := postQuestion(t, payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.False(t, reached)
	})

	t.Run("out of range correct choice rejected", func(t *testing.T) {
		payload := base()
		payload["choices"] = []string{"A", "B"}
		payload["correct_choice"] = 3
		status, reached := postQuestion(t, payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.False(t, reached)
	})
}

func TestQuestionFormTrueFalse(t *testing.T) {
	status, reached := postQuestion(t, map[string]interface{}{
		"question_type":   "TRUE_FALSE",
		"text":            "The sky is blue.",
		"points":          1,
		"true_is_correct": true,
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, reached)

	status, reached = postQuestion(t, map[string]interface{}{
		"question_type": "TRUE_FALSE",
		"text":          "The sky is blue.",
		"points":        1,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, reached)
}

func TestQuestionFormShortTextRejectsChoices(t *testing.T) {
	status, reached := postQuestion(t, map[string]interface{}{
		"question_type": "SHORT_TEXT",
		"text":          "Explain.",
		"points":        2,
		"choices":       []string{"A"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, reached)
}

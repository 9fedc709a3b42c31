package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompleted(t *testing.T) {
	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := first.AddDate(0, 0, 14)

	e := Enrollment{Status: StatusInProgress, Progress: 80}
	e.MarkCompleted(first)

	assert.Equal(t, StatusCompleted, e.Status)
	assert.Equal(t, 100, e.Progress)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, e.CompletedAt.Equal(first))

	// A second completion keeps the original timestamp
	e.MarkCompleted(later)
	assert.True(t, e.CompletedAt.Equal(first))
}

package services

import "time"

// now is swapped out in tests to pin time-dependent behavior
var now = time.Now

// today truncates the clock to a date for due-date comparisons
func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

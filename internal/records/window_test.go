package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekWindowsMidweek(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 4, 5, 0, time.UTC) // Wednesday
	w := WeekWindows(now)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), w.Today)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), w.StartOfThisWeek)
	assert.Equal(t, time.Date(2024, 6, 16, 23, 59, 59, 999_000_000, time.UTC), w.EndOfThisWeek)
	assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), w.StartOfNextWeek)
	assert.Equal(t, time.Date(2024, 6, 23, 23, 59, 59, 999_000_000, time.UTC), w.EndOfNextWeek)
}

func TestWeekWindowsEdges(t *testing.T) {
	monday := WeekWindows(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), monday.StartOfThisWeek)

	sunday := WeekWindows(time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), sunday.StartOfThisWeek)
	assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), sunday.StartOfNextWeek)

	// across a month and year boundary
	nye := WeekWindows(time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), nye.StartOfThisWeek)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), nye.StartOfNextWeek)
}

func TestWeekWindowsIsPure(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, WeekWindows(now), WeekWindows(now))
}

func TestWeekWindowsAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// DST starts Sunday 2024-03-10
	w := WeekWindows(time.Date(2024, 3, 6, 12, 0, 0, 0, ny))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, ny), w.StartOfThisWeek)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, ny), w.EndOfThisWeek)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, ny), w.StartOfNextWeek)
	assert.Equal(t, 0, w.StartOfNextWeek.Hour())
}

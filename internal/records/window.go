package records

import "time"

// Windows are the week boundaries derived from one reference day. Week
// starts on Monday. End instants are inclusive (23:59:59.999).
type Windows struct {
	Today           time.Time `json:"today"`
	StartOfThisWeek time.Time `json:"startOfThisWeek"`
	EndOfThisWeek   time.Time `json:"endOfThisWeek"`
	StartOfNextWeek time.Time `json:"startOfNextWeek"`
	EndOfNextWeek   time.Time `json:"endOfNextWeek"`
}

// Midnight truncates t to 00:00 of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekWindows computes the boundaries for the week containing now. All
// values come from calendar arithmetic on today's date, so a DST change
// inside the week does not shift them.
func WeekWindows(now time.Time) Windows {
	today := Midnight(now)
	y, m, d := today.Date()
	loc := today.Location()

	back := (int(today.Weekday()) + 6) % 7
	day := func(offset int) time.Time {
		return time.Date(y, m, d+offset, 0, 0, 0, 0, loc)
	}
	lastMoment := func(offset int) time.Time {
		return time.Date(y, m, d+offset, 23, 59, 59, int(999*time.Millisecond), loc)
	}

	return Windows{
		Today:           today,
		StartOfThisWeek: day(-back),
		EndOfThisWeek:   lastMoment(-back + 6),
		StartOfNextWeek: day(-back + 7),
		EndOfNextWeek:   lastMoment(-back + 13),
	}
}

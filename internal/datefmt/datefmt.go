// Package datefmt renders the dates and times stored on interview records the
// way the admin panel displays them. None of the functions fail: malformed
// input degrades to "N/A" or is passed through unchanged.
package datefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const NotAvailable = "N/A"

// layouts accepted by Parse, tried in order.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// Parse reads a date in any supported layout. Zone-less values are read in
// loc; values carrying an offset are converted to loc.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// DDMMYYYY reorders "YYYY-MM-DD" into "DD-MM-YYYY" without validating the
// date. Other inputs are parsed and reformatted, or returned as-is when they
// cannot be parsed.
func DDMMYYYY(s string) string {
	if s == "" {
		return NotAvailable
	}
	if parts := strings.Split(s, "-"); len(parts) == 3 && len(parts[0]) == 4 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	t, ok := Parse(s, time.Local)
	if !ok {
		return s
	}
	return t.Format("02-01-2006")
}

// WithDayAndMonth renders "DD-MM-YYYY (Ddd)".
func WithDayAndMonth(s string) string {
	t, ok := Parse(s, time.Local)
	if !ok {
		return NotAvailable
	}
	return t.Format("02-01-2006 (Mon)")
}

// TimeTo12H converts "HH:MM" to a 12-hour clock reading such as "1:30 PM".
func TimeTo12H(s string) string {
	if s == "" {
		return "00:00 AM"
	}
	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return s
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return s
	}
	hours, ok := number(parts[0])
	if !ok {
		return s
	}
	minutes, ok := number(parts[1])
	if !ok {
		return s
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minutes, period)
}

// number converts a clock component, treating blank as zero.
func number(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

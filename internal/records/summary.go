package records

import "time"

// Summary holds the dashboard counters.
type Summary struct {
	Scheduled int `json:"scheduled"`
	Passed    int `json:"passed"`
	Pending   int `json:"pending"`
	Total     int `json:"total"`
	ThisWeek  int `json:"thisWeek"`
	NextWeek  int `json:"nextWeek"`
}

// Summarize counts over the whole collection. It is cheap at the sizes the
// panel deals with and is recomputed on every read.
func Summarize(recs []Record, now time.Time) Summary {
	today := Midnight(now)
	s := Summary{
		Total:    len(recs),
		ThisWeek: len(Filter(recs, ThisWeek, now)),
		NextWeek: len(Filter(recs, NextWeek, now)),
	}
	for _, r := range recs {
		if at, ok := r.InterviewDay(today.Location()); ok && !at.Before(today) {
			s.Scheduled++
		}
		switch r.InterviewStatus {
		case StatusPass:
			s.Passed++
		case StatusProcess:
			s.Pending++
		}
	}
	return s
}

// Recent returns up to n records from the end of the collection, last first.
func Recent(recs []Record, n int) []Record {
	if n > len(recs) {
		n = len(recs)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Record, 0, n)
	for i := len(recs) - 1; i >= len(recs)-n; i-- {
		out = append(out, recs[i])
	}
	return out
}

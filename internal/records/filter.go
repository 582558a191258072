package records

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Bucket names one of the dashboard's date views.
type Bucket string

const (
	ThisWeek Bucket = "thisWeek"
	NextWeek Bucket = "nextWeek"
	History  Bucket = "history"
)

// Buckets lists the buckets in tab order.
var Buckets = []Bucket{ThisWeek, NextWeek, History}

// ParseBucket accepts a bucket name; an empty string selects ThisWeek.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case "":
		return ThisWeek, nil
	case ThisWeek, NextWeek, History:
		return Bucket(s), nil
	}
	return "", fmt.Errorf("unknown bucket %q", s)
}

// Label is the tab title for the bucket.
func (b Bucket) Label() string {
	switch b {
	case ThisWeek:
		return "This Week"
	case NextWeek:
		return "Next Week"
	case History:
		return "History"
	}
	return string(b)
}

// Filter returns the records whose interview date falls in bucket b relative
// to now. Records without a parseable interview date never qualify. History
// is ordered most recent first, the forward-looking buckets soonest first;
// equal dates keep their collection order. The input is not modified.
func Filter(recs []Record, b Bucket, now time.Time) []Record {
	w := WeekWindows(now)
	loc := w.Today.Location()

	type dated struct {
		rec Record
		at  time.Time
	}
	var matched []dated
	for _, r := range recs {
		at, ok := r.InterviewDay(loc)
		if !ok || !w.contains(b, at) {
			continue
		}
		matched = append(matched, dated{rec: r, at: at})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if b == History {
			return matched[i].at.After(matched[j].at)
		}
		return matched[i].at.Before(matched[j].at)
	})

	out := make([]Record, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.rec)
	}
	return out
}

func (w Windows) contains(b Bucket, at time.Time) bool {
	switch b {
	case History:
		return at.Before(w.Today)
	case ThisWeek:
		return !at.Before(w.Today) && !at.After(w.EndOfThisWeek)
	case NextWeek:
		return !at.Before(w.StartOfNextWeek) && !at.After(w.EndOfNextWeek)
	}
	return false
}

// Search returns the collection newest first, narrowed to records matching
// query. Text fields match case-insensitively; the contact number matches as
// typed.
func Search(recs []Record, query string) []Record {
	q := strings.ToLower(query)
	out := make([]Record, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		if q == "" ||
			containsFold(r.RecruiterName, q) ||
			containsFold(r.CompanyName, q) ||
			containsFold(r.JobRole, q) ||
			strings.Contains(r.ContactNumber, query) ||
			containsFold(r.Location, q) ||
			containsFold(r.Package, q) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

// Find looks a record up by id.
func Find(recs []Record, id string) (Record, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

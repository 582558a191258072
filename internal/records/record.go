// Package records holds the interview-pipeline record model and the derived
// views the admin panel shows over an owner's collection: week buckets,
// summary counters, search, CSV export and the draft editor.
package records

import (
	"log"
	"time"

	"github.com/Zachkp/portfolio-admin/internal/datefmt"
)

// Status is the state of one interview round or of the whole pipeline.
type Status string

const (
	StatusProcess  Status = "Process"
	StatusComplete Status = "Complete"
	StatusPass     Status = "Pass"
	StatusFail     Status = "Fail"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusProcess, StatusComplete, StatusPass, StatusFail}

func (s Status) IsValid() bool {
	switch s {
	case StatusProcess, StatusComplete, StatusPass, StatusFail:
		return true
	default:
		return false
	}
}

// YesNo is the answer stored on the mail sub-records.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func (y YesNo) IsValid() bool {
	return y == Yes || y == No
}

// Mail tracks one leg of the e-mail exchange with a recruiter.
type Mail struct {
	Status YesNo  `json:"status" firestore:"status"`
	Date   string `json:"date" firestore:"date"`
}

// Record is one candidate/company interview pipeline entry. Optional string
// fields are empty when absent. Field names in storage match the documents
// the admin panel has always written to the hrRecords collection.
type Record struct {
	ID      string `json:"id" firestore:"-"`
	OwnerID string `json:"userId" firestore:"userId"`

	RecruiterName string `json:"hrName" firestore:"hrName"`
	ContactNumber string `json:"contactNo" firestore:"contactNo"`
	CallingDate   string `json:"callingDate" firestore:"callingDate"`
	CompanyName   string `json:"companyName" firestore:"companyName"`
	Location      string `json:"location" firestore:"location"`
	Package       string `json:"package" firestore:"package"`
	JobRole       string `json:"jobRole" firestore:"jobRole"`

	MailReceived Mail `json:"mailReceived" firestore:"mailReceived"`
	MailRevert   Mail `json:"mailRevert" firestore:"mailRevert"`

	Round1          Status `json:"r1" firestore:"r1"`
	Round2          Status `json:"r2" firestore:"r2"`
	Round3          Status `json:"r3" firestore:"r3"`
	InterviewStatus Status `json:"interviewStatus" firestore:"interviewStatus"`

	InterviewDate string `json:"interviewDate" firestore:"interviewDate"`
	InterviewTime string `json:"interviewTiming" firestore:"interviewTiming"`

	FinalStatus string `json:"finalStatus" firestore:"finalStatus"`
	Remarks     string `json:"remarkNote" firestore:"remarkNote"`

	CreatedAt time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

// NewRecord returns the defaults a fresh draft starts from.
func NewRecord() Record {
	return Record{
		MailReceived:    Mail{Status: No},
		MailRevert:      Mail{Status: No},
		Round1:          StatusProcess,
		Round2:          StatusProcess,
		Round3:          StatusProcess,
		InterviewStatus: StatusProcess,
	}
}

// InterviewDay parses InterviewDate in loc. It reports false when the date is
// absent or unparseable.
func (r Record) InterviewDay(loc *time.Location) (time.Time, bool) {
	return datefmt.Parse(r.InterviewDate, loc)
}

// Normalize fills unset or unknown enum values with their defaults. It is
// applied to everything read from a backend before the rest of the package
// sees it.
func Normalize(r Record) Record {
	r.Round1 = normalizeStatus(r.ID, "r1", r.Round1)
	r.Round2 = normalizeStatus(r.ID, "r2", r.Round2)
	r.Round3 = normalizeStatus(r.ID, "r3", r.Round3)
	r.InterviewStatus = normalizeStatus(r.ID, "interviewStatus", r.InterviewStatus)
	if !r.MailReceived.Status.IsValid() {
		r.MailReceived.Status = No
	}
	if !r.MailRevert.Status.IsValid() {
		r.MailRevert.Status = No
	}
	return r
}

func normalizeStatus(id, field string, s Status) Status {
	if s.IsValid() {
		return s
	}
	if s != "" {
		log.Printf("record %s: unknown %s %q, treating as %s", id, field, s, StatusProcess)
	}
	return StatusProcess
}

// Clone copies a collection so callers can reorder it freely.
func Clone(recs []Record) []Record {
	if recs == nil {
		return nil
	}
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

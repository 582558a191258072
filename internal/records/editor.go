package records

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Zachkp/portfolio-admin/internal/session"
)

// MaxContactLength is the longest contact number accepted.
const MaxContactLength = 10

// Writer persists records. Update replaces every mutable field of the stored
// record.
type Writer interface {
	Create(ctx context.Context, rec Record) (string, error)
	Update(ctx context.Context, id string, rec Record) error
	Delete(ctx context.Context, id string) error
}

// Validate checks the rules a draft must satisfy before it is written.
func (r *Record) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.RecruiterName, validation.Required.Error("HR name is required")),
		validation.Field(&r.ContactNumber,
			validation.Required.Error("Contact number is required"),
			validation.RuneLength(0, MaxContactLength).Error("Contact number cannot be more than 10 digits"),
		),
		validation.Field(&r.CompanyName, validation.Required.Error("Company name is required")),
		validation.Field(&r.Round1, statusRule),
		validation.Field(&r.Round2, statusRule),
		validation.Field(&r.Round3, statusRule),
		validation.Field(&r.InterviewStatus, statusRule),
		validation.Field(&r.MailReceived),
		validation.Field(&r.MailRevert),
	)
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

var statusRule = validation.In(StatusProcess, StatusComplete, StatusPass, StatusFail).
	Error("must be one of Process, Complete, Pass, Fail")

func (m Mail) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Status, validation.In(Yes, No).Error("must be Yes or No")),
	)
}

// EditorState is where the editor is in its submit cycle.
type EditorState int

const (
	StateEmpty EditorState = iota
	StateEditing
	StateSubmitting
)

func (s EditorState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("EditorState(%d)", int(s))
}

// Editor holds one record draft between opening the form and a successful
// save. A failed save, for validation or store reasons, leaves the draft
// untouched in StateEditing.
type Editor struct {
	w     Writer
	sess  session.Session
	clock func() time.Time

	mu    sync.Mutex
	state EditorState
	draft Record
	// id of the record being edited, empty for a new one
	id string
}

func NewEditor(w Writer, sess session.Session, clock func() time.Time) *Editor {
	if clock == nil {
		clock = time.Now
	}
	e := &Editor{w: w, sess: sess, clock: clock}
	e.reset()
	return e
}

func (e *Editor) reset() {
	e.state = StateEmpty
	e.draft = NewRecord()
	e.id = ""
}

// Reset discards the draft.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Edit starts editing an existing record.
func (e *Editor) Edit(rec Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateEditing
	e.draft = rec
	e.id = rec.ID
}

// SetDraft replaces the form contents. Identity fields stay with the editor:
// the draft's ID is ignored.
func (e *Editor) SetDraft(d Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d.ID = e.id
	e.draft = d
	e.state = StateEditing
}

func (e *Editor) Draft() Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Submit validates the draft and writes it: an overwrite when editing an
// existing record, a create otherwise. It returns the record id.
func (e *Editor) Submit(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.state == StateSubmitting {
		e.mu.Unlock()
		return "", ErrBusy
	}
	rec := withDefaults(e.draft)
	if err := rec.Validate(); err != nil {
		e.state = StateEditing
		e.mu.Unlock()
		return "", err
	}
	id := e.id
	e.state = StateSubmitting
	e.mu.Unlock()

	rec.OwnerID = e.sess.UID
	var err error
	if id != "" {
		rec.ID = id
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = e.clock()
		}
		err = e.w.Update(ctx, id, rec)
	} else {
		rec.ID = ""
		rec.CreatedAt = e.clock()
		id, err = e.w.Create(ctx, rec)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateEditing
		return "", err
	}
	e.reset()
	return id, nil
}

// Delete removes a record permanently once the caller has confirmed it.
func (e *Editor) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return e.w.Delete(ctx, id)
}

// withDefaults fills enum fields a form left blank.
func withDefaults(r Record) Record {
	for _, s := range []*Status{&r.Round1, &r.Round2, &r.Round3, &r.InterviewStatus} {
		if *s == "" {
			*s = StatusProcess
		}
	}
	if r.MailReceived.Status == "" {
		r.MailReceived.Status = No
	}
	if r.MailRevert.Status == "" {
		r.MailRevert.Status = No
	}
	return r
}

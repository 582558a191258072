package records

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotConfirmed is returned by Editor.Delete when the caller did not
	// confirm the deletion.
	ErrNotConfirmed = errors.New("delete not confirmed")

	// ErrPermission and ErrNotFound are returned (wrapped) by writers.
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("record not found")

	// ErrBusy is returned when Submit is called while a submission is running.
	ErrBusy = errors.New("a submission is already in progress")
)

// ValidationError reports the fields that blocked a submission.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Message()
}

// Message is the first field error, in a stable order, for the alert shown
// to the user.
func (e *ValidationError) Message() string {
	if len(e.Fields) == 0 {
		return "invalid record"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldOrder(keys[i]) < fieldOrder(keys[j]) })
	return e.Fields[keys[0]].Error()
}

// FieldMessages flattens the field errors for JSON responses.
func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for k, err := range e.Fields {
		out[k] = err.Error()
	}
	return out
}

// contact number first: it is the rule users trip over.
var formOrder = []string{"contactNo", "hrName", "companyName"}

func fieldOrder(key string) string {
	for i, k := range formOrder {
		if k == key {
			return string(rune('0' + i))
		}
	}
	return "9" + key
}

// UserMessage turns an editor error into the text shown to the operator.
func UserMessage(err error, op string) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message()
	case errors.Is(err, ErrNotConfirmed):
		return "Deletion cancelled."
	case errors.Is(err, ErrPermission):
		return "Permission denied. Please check the record store rules."
	case errors.Is(err, ErrNotFound):
		return "Record not found."
	case errors.Is(err, ErrBusy):
		return "Please wait for the current save to finish."
	}
	return "Error " + strings.TrimSpace(op) + " record. Please try again."
}

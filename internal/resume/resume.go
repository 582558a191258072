// Package resume keeps the single downloadable resume file.
package resume

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Key names the one blob this package manages.
const Key = "resume"

// MaxSize caps an upload.
const MaxSize = 10 << 20

var (
	ErrNotFound = errors.New("resume not found")
	ErrFileType = errors.New("unsupported resume file type")
	ErrTooLarge = errors.New("resume file too large")
	ErrEmpty    = errors.New("resume file is empty")
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type Blob struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store persists the resume blob.
type Store interface {
	Put(ctx context.Context, b Blob) error
	Get(ctx context.Context) (Blob, error)
}

// Prepare checks an uploaded file and fills in its content type from the
// extension.
func Prepare(filename string, data []byte) (Blob, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return Blob{}, fmt.Errorf("%s: %w", name, ErrFileType)
	}
	if len(data) == 0 {
		return Blob{}, ErrEmpty
	}
	if len(data) > MaxSize {
		return Blob{}, ErrTooLarge
	}
	return Blob{Filename: name, ContentType: ct, Data: data}, nil
}

// Package store connects the admin panel to the document store holding the
// HR records: backends with an owner-scoped live feed, and the in-process
// collection each signed-in session reads from.
package store

import (
	"context"
	"errors"

	"github.com/Zachkp/portfolio-admin/internal/records"
)

var (
	ErrPermission = records.ErrPermission
	ErrNotFound   = records.ErrNotFound

	// ErrStreamDone is returned by Stream.Next after Stop or cancellation.
	ErrStreamDone = errors.New("stream stopped")
)

// Snapshot is the complete owner-scoped collection at one moment.
type Snapshot struct {
	Records []records.Record
}

// Stream delivers snapshots until stopped. Next blocks.
type Stream interface {
	Next() (Snapshot, error)
	Stop()
}

// Backend is a document store holding records of many owners.
type Backend interface {
	records.Writer
	// Watch opens a live feed of the records owned by ownerID. The current
	// contents arrive as the first snapshot.
	Watch(ctx context.Context, ownerID string) (Stream, error)
	Close() error
}

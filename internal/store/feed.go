package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Zachkp/portfolio-admin/internal/records"
	"github.com/Zachkp/portfolio-admin/internal/session"
)

// State is the lifecycle of a Feed.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateReady
	// StateFailed is terminal; reopening needs a new sign-in or restart.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Feed mirrors one owner's records in memory. Every snapshot from the
// backend replaces the whole collection.
//
// The feed is also the write path for that owner. While a write is in
// flight, arriving snapshots are held back (only the newest is kept) and
// applied once no writes are pending, so a view never flips back to a state
// older than the write the operator just made.
type Feed struct {
	backend Backend
	sess    session.Session

	mu       sync.RWMutex
	state    State
	err      error
	recs     []records.Record
	version  uint64
	pending  int
	deferred *Snapshot

	cancel context.CancelFunc
	done   chan struct{}
}

func NewFeed(backend Backend, sess session.Session) *Feed {
	return &Feed{backend: backend, sess: sess}
}

func (f *Feed) Session() session.Session {
	return f.sess
}

// Open starts the subscription. Opening an open feed is a no-op.
func (f *Feed) Open(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateLoading || f.state == StateReady {
		f.mu.Unlock()
		return nil
	}
	f.state, f.err = StateLoading, nil
	f.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stream, err := f.backend.Watch(ctx, f.sess.UID)
	if err != nil {
		cancel()
		f.mu.Lock()
		f.state, f.err = StateFailed, err
		f.mu.Unlock()
		return fmt.Errorf("watch records for %s: %w", f.sess.UID, err)
	}

	f.mu.Lock()
	f.cancel = cancel
	f.done = make(chan struct{})
	done := f.done
	f.mu.Unlock()

	go f.run(stream, done)
	return nil
}

func (f *Feed) run(stream Stream, done chan struct{}) {
	defer close(done)
	defer stream.Stop()
	for {
		snap, err := stream.Next()
		if errors.Is(err, ErrStreamDone) {
			return
		}
		if err != nil {
			log.Printf("Error loading records for %s: %v", f.sess.UID, err)
			f.mu.Lock()
			if f.state != StateClosed {
				f.state, f.err = StateFailed, err
			}
			f.mu.Unlock()
			return
		}
		f.apply(snap)
	}
}

func (f *Feed) apply(snap Snapshot) {
	recs := make([]records.Record, 0, len(snap.Records))
	for _, r := range snap.Records {
		recs = append(recs, records.Normalize(r))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateClosed || f.state == StateFailed {
		return
	}
	if f.pending > 0 {
		f.deferred = &Snapshot{Records: recs}
		return
	}
	f.replace(recs)
}

// replace must be called with mu held.
func (f *Feed) replace(recs []records.Record) {
	f.recs = recs
	f.version++
	f.state = StateReady
}

// Close cancels the subscription, waits for it to wind down and clears the
// collection.
func (f *Feed) Close() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.state, f.err = StateClosed, nil
	f.recs, f.deferred = nil, nil
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Records returns a copy of the current collection.
func (f *Feed) Records() []records.Record {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return records.Clone(f.recs)
}

// Status reports the state and, when failed, the error that ended the feed.
func (f *Feed) Status() (State, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state, f.err
}

// Version increases each time a snapshot is applied.
func (f *Feed) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

func (f *Feed) begin() {
	f.mu.Lock()
	f.pending++
	f.mu.Unlock()
}

func (f *Feed) end() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending--
	if f.pending == 0 && f.deferred != nil {
		snap := f.deferred
		f.deferred = nil
		if f.state == StateLoading || f.state == StateReady {
			f.replace(snap.Records)
		}
	}
}

func (f *Feed) Create(ctx context.Context, rec records.Record) (string, error) {
	f.begin()
	defer f.end()
	rec.OwnerID = f.sess.UID
	return f.backend.Create(ctx, rec)
}

func (f *Feed) Update(ctx context.Context, id string, rec records.Record) error {
	f.begin()
	defer f.end()
	// Everything in the feed belongs to this owner, so an id missing from a
	// loaded feed is either gone or someone else's.
	if _, ok := records.Find(f.Records(), id); !ok && f.isReady() {
		return fmt.Errorf("update record %s: %w", id, ErrNotFound)
	}
	rec.OwnerID = f.sess.UID
	return f.backend.Update(ctx, id, rec)
}

func (f *Feed) Delete(ctx context.Context, id string) error {
	f.begin()
	defer f.end()
	if _, ok := records.Find(f.Records(), id); !ok && f.isReady() {
		return fmt.Errorf("delete record %s: %w", id, ErrNotFound)
	}
	return f.backend.Delete(ctx, id)
}

func (f *Feed) isReady() bool {
	state, _ := f.Status()
	return state == StateReady
}

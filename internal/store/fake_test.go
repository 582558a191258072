package store

import (
	"context"
	"errors"
	"sync"

	"github.com/Zachkp/portfolio-admin/internal/records"
)

// fakeBackend hands out scripted streams and records writes.
type fakeBackend struct {
	mu       sync.Mutex
	streams  []*fakeStream
	watchErr error
	// block, when set, is waited on by every write
	block  chan struct{}
	writes []string
	closed bool
}

func (b *fakeBackend) Watch(ctx context.Context, ownerID string) (Stream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watchErr != nil {
		return nil, b.watchErr
	}
	s := &fakeStream{ctx: ctx, events: make(chan fakeEvent, 16), owner: ownerID}
	b.streams = append(b.streams, s)
	return s, nil
}

func (b *fakeBackend) stream(i int) *fakeStream {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streams[i]
}

func (b *fakeBackend) streamCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.streams)
}

func (b *fakeBackend) wait() {
	b.mu.Lock()
	block := b.block
	b.mu.Unlock()
	if block != nil {
		<-block
	}
}

func (b *fakeBackend) log(op string) {
	b.mu.Lock()
	b.writes = append(b.writes, op)
	b.mu.Unlock()
}

func (b *fakeBackend) Create(_ context.Context, rec records.Record) (string, error) {
	b.wait()
	b.log("create:" + rec.OwnerID)
	return "new-id", nil
}

func (b *fakeBackend) Update(_ context.Context, id string, rec records.Record) error {
	b.wait()
	b.log("update:" + id + ":" + rec.OwnerID)
	return nil
}

func (b *fakeBackend) Delete(_ context.Context, id string) error {
	b.wait()
	b.log("delete:" + id)
	return nil
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}

type fakeEvent struct {
	snap Snapshot
	err  error
}

type fakeStream struct {
	ctx     context.Context
	owner   string
	events  chan fakeEvent
	mu      sync.Mutex
	stopped bool
}

func (s *fakeStream) send(recs ...records.Record) {
	s.events <- fakeEvent{snap: Snapshot{Records: recs}}
}

func (s *fakeStream) sendErr(err error) {
	s.events <- fakeEvent{err: err}
}

func (s *fakeStream) Next() (Snapshot, error) {
	select {
	case ev := <-s.events:
		return ev.snap, ev.err
	case <-s.ctx.Done():
		return Snapshot{}, ErrStreamDone
	}
}

func (s *fakeStream) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

func (s *fakeStream) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

var errBoom = errors.New("boom")

func record(id string) records.Record {
	r := records.NewRecord()
	r.ID = id
	r.OwnerID = "owner-1"
	return r
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio-admin/internal/records"
)

// SQLite keeps records in the local database. Writers are in-process, so
// live feeds are served by publishing a fresh snapshot to every watcher of
// the affected owner after each write.
type SQLite struct {
	db *sql.DB

	// pubMu orders snapshot reads with their delivery, so a watcher never
	// receives an older listing after a newer one.
	pubMu sync.Mutex

	mu       sync.Mutex
	watchers map[string]map[*chanStream]struct{}
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, watchers: map[string]map[*chanStream]struct{}{}}
}

func (s *SQLite) Create(ctx context.Context, rec records.Record) (string, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hr_records (id, owner_id, data, created_at, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM hr_records))
	`, rec.ID, rec.OwnerID, string(data), rec.CreatedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	s.publish(ctx, rec.OwnerID)
	return rec.ID, nil
}

// Update overwrites the stored record. The owner may not change.
func (s *SQLite) Update(ctx context.Context, id string, rec records.Record) error {
	rec.ID = id
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	owner, err := s.owner(ctx, id)
	if err != nil {
		return err
	}
	if owner != rec.OwnerID {
		return fmt.Errorf("update record %s: %w", id, ErrPermission)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE hr_records SET data = ? WHERE id = ?`, string(data), id); err != nil {
		return fmt.Errorf("update record %s: %w", id, err)
	}
	s.publish(ctx, owner)
	return nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	owner, err := s.owner(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM hr_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	s.publish(ctx, owner)
	return nil
}

func (s *SQLite) owner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT owner_id FROM hr_records WHERE id = ?`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("lookup record %s: %w", id, err)
	}
	return owner, nil
}

// List returns the owner's records in insertion order.
func (s *SQLite) List(ctx context.Context, ownerID string) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM hr_records WHERE owner_id = ? ORDER BY seq`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec records.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
		rec.ID = id
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLite) Watch(ctx context.Context, ownerID string) (Stream, error) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	recs, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	st := newChanStream(ctx)
	st.onStop = func() { s.unwatch(ownerID, st) }

	s.mu.Lock()
	if s.watchers[ownerID] == nil {
		s.watchers[ownerID] = map[*chanStream]struct{}{}
	}
	s.watchers[ownerID][st] = struct{}{}
	s.mu.Unlock()

	st.push(Snapshot{Records: recs})
	return st, nil
}

func (s *SQLite) unwatch(ownerID string, st *chanStream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers[ownerID], st)
	if len(s.watchers[ownerID]) == 0 {
		delete(s.watchers, ownerID)
	}
}

func (s *SQLite) publish(ctx context.Context, ownerID string) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	targets := make([]*chanStream, 0, len(s.watchers[ownerID]))
	for st := range s.watchers[ownerID] {
		targets = append(targets, st)
	}
	s.mu.Unlock()
	if len(targets) == 0 {
		return
	}

	recs, err := s.List(context.WithoutCancel(ctx), ownerID)
	for _, st := range targets {
		if err != nil {
			st.fail(err)
			continue
		}
		st.push(Snapshot{Records: records.Clone(recs)})
	}
}

// Close is a no-op: the database handle belongs to the caller.
func (s *SQLite) Close() error {
	return nil
}

// chanStream is a Stream fed by the SQLite backend. Only the newest pending
// snapshot is kept; a slow reader skips intermediate states.
type chanStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	ready  chan struct{}
	onStop func()

	mu      sync.Mutex
	pending *Snapshot
	err     error
	once    sync.Once
}

func newChanStream(parent context.Context) *chanStream {
	ctx, cancel := context.WithCancel(parent)
	return &chanStream{ctx: ctx, cancel: cancel, ready: make(chan struct{}, 1)}
}

func (c *chanStream) push(s Snapshot) {
	c.mu.Lock()
	c.pending = &s
	c.mu.Unlock()
	c.signal()
}

func (c *chanStream) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	c.signal()
}

func (c *chanStream) signal() {
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

func (c *chanStream) Next() (Snapshot, error) {
	for {
		c.mu.Lock()
		if c.ctx.Err() != nil {
			c.mu.Unlock()
			return Snapshot{}, ErrStreamDone
		}
		if c.pending != nil {
			s := *c.pending
			c.pending = nil
			c.mu.Unlock()
			return s, nil
		}
		if c.err != nil {
			err := c.err
			c.mu.Unlock()
			return Snapshot{}, err
		}
		c.mu.Unlock()

		select {
		case <-c.ready:
		case <-c.ctx.Done():
		}
	}
}

func (c *chanStream) Stop() {
	c.once.Do(func() {
		c.cancel()
		if c.onStop != nil {
			c.onStop()
		}
	})
}

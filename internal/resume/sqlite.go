package resume

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite stores the resume in the blobs table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Put(ctx context.Context, b Blob) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (name, filename, content_type, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			filename = excluded.filename,
			content_type = excluded.content_type,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, Key, b.Filename, b.ContentType, b.Data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context) (Blob, error) {
	var b Blob
	err := s.db.QueryRowContext(ctx, `
		SELECT filename, content_type, data FROM blobs WHERE name = ?
	`, Key).Scan(&b.Filename, &b.ContentType, &b.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, ErrNotFound
	}
	if err != nil {
		return Blob{}, fmt.Errorf("load resume: %w", err)
	}
	return b, nil
}

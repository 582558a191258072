// Package inbox stores messages left through the public contact form.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("message not found")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

type Message struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"date"`
	IsNew       bool      `json:"isNew"`
}

// Validate checks a submission before it is stored.
func (m Message) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required.Error("Please enter your name"), validation.RuneLength(0, 100)),
		validation.Field(&m.Email, validation.Required.Error("Please enter your email"), is.EmailFormat.Error("Please enter a valid email")),
		validation.Field(&m.Phone, validation.RuneLength(0, 20)),
		validation.Field(&m.Message, validation.Required.Error("Please enter a message"), validation.RuneLength(0, 5000)),
	)
}

// Inbox keeps messages in the local SQLite database.
type Inbox struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Inbox {
	return &Inbox{db: db, now: time.Now}
}

// Submit validates and stores a new unread message.
func (in *Inbox) Submit(ctx context.Context, m Message) (Message, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Message = strings.TrimSpace(m.Message)
	if err := m.Validate(); err != nil {
		return Message{}, err
	}

	m.ID = uuid.NewString()
	m.SubmittedAt = in.now().UTC()
	m.IsNew = true
	_, err := in.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, message, submitted_at, is_new)
		VALUES (?, ?, ?, ?, ?, ?, 1)
	`, m.ID, m.Name, m.Email, m.Phone, m.Message, m.SubmittedAt)
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

// List returns every message, newest first.
func (in *Inbox) List(ctx context.Context) ([]Message, error) {
	rows, err := in.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), message, submitted_at, is_new
		FROM contact_messages
		ORDER BY submitted_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.SubmittedAt, &m.IsNew); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (in *Inbox) UnreadCount(ctx context.Context) (int, error) {
	var n int
	if err := in.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_new = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

// MarkAllRead clears the unread flag on every message and reports how many
// changed.
func (in *Inbox) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := in.db.ExecContext(ctx, `UPDATE contact_messages SET is_new = 0 WHERE is_new = 1`)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes one message. Nothing happens unless confirmed is true.
func (in *Inbox) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	res, err := in.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete message %s: %w", id, ErrNotFound)
	}
	return nil
}

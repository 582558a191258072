package inbox

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-admin/internal/sqlitedb"
)

func newInbox(t *testing.T) *Inbox {
	t.Helper()
	db, err := sqlitedb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	in := New(db)
	clock := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	in.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return in
}

func message(name string) Message {
	return Message{Name: name, Email: name + "@example.com", Message: "hello from " + name}
}

func TestSubmitAndListNewestFirst(t *testing.T) {
	ctx := context.Background()
	in := newInbox(t)

	first, err := in.Submit(ctx, message("ana"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.IsNew)

	_, err = in.Submit(ctx, message("ben"))
	require.NoError(t, err)

	msgs, err := in.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "ben", msgs[0].Name)
	assert.Equal(t, "ana", msgs[1].Name)
	assert.True(t, msgs[1].SubmittedAt.Before(msgs[0].SubmittedAt))
}

func TestSubmitValidation(t *testing.T) {
	in := newInbox(t)

	_, err := in.Submit(context.Background(), Message{Name: "  ", Email: "not-an-email"})
	require.Error(t, err)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "message")

	msgs, err := in.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestUnreadAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	in := newInbox(t)

	for _, n := range []string{"ana", "ben", "cy"} {
		_, err := in.Submit(ctx, message(n))
		require.NoError(t, err)
	}
	n, err := in.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	changed, err := in.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, changed)

	n, err = in.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	msgs, err := in.List(ctx)
	require.NoError(t, err)
	for _, m := range msgs {
		assert.False(t, m.IsNew)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	in := newInbox(t)

	m, err := in.Submit(ctx, message("ana"))
	require.NoError(t, err)

	assert.ErrorIs(t, in.Delete(ctx, m.ID, false), ErrNotConfirmed)
	msgs, _ := in.List(ctx)
	assert.Len(t, msgs, 1)

	require.NoError(t, in.Delete(ctx, m.ID, true))
	msgs, _ = in.List(ctx)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, in.Delete(ctx, m.ID, true), ErrNotFound)
}

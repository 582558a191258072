package resume

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/Zachkp/portfolio-admin/internal/sqlitedb"
)

func TestPrepare(t *testing.T) {
	b, err := Prepare("CV Final.PDF", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "CV Final.PDF", b.Filename)
	assert.Equal(t, "application/pdf", b.ContentType)

	b, err = Prepare("../../etc/resume.docx", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "resume.docx", b.Filename)

	_, err = Prepare("resume.exe", []byte("x"))
	assert.ErrorIs(t, err, ErrFileType)
	_, err = Prepare("resume.pdf", nil)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = Prepare("resume.pdf", make([]byte, MaxSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := sqlitedb.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	s := NewSQLite(db)

	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, Blob{Filename: "a.pdf", ContentType: "application/pdf", Data: []byte("one")}))
	require.NoError(t, s.Put(ctx, Blob{Filename: "b.doc", ContentType: "application/msword", Data: []byte("two")}))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b.doc", got.Filename)
	assert.Equal(t, "application/msword", got.ContentType)
	assert.Equal(t, []byte("two"), got.Data)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(storage.ErrObjectNotExist), ErrNotFound)
	assert.ErrorIs(t, classify(fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusNotFound})), ErrNotFound)

	other := errors.New("network down")
	assert.Equal(t, other, classify(other))
}

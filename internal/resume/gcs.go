package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCS stores the resume as one object in a Cloud Storage bucket. The
// original filename travels in the object metadata.
type GCS struct {
	bucket *storage.BucketHandle
	object string
}

func NewGCSClient(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{bucket: client.Bucket(bucket), object: Key}
}

func (g *GCS) Put(ctx context.Context, b Blob) error {
	w := g.bucket.Object(g.object).NewWriter(ctx)
	w.ContentType = b.ContentType
	w.Metadata = map[string]string{"filename": b.Filename}
	if _, err := w.Write(b.Data); err != nil {
		w.Close()
		return fmt.Errorf("upload resume: %w", classify(err))
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload resume: %w", classify(err))
	}
	return nil
}

func (g *GCS) Get(ctx context.Context) (Blob, error) {
	obj := g.bucket.Object(g.object)
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return Blob{}, classify(err)
	}
	r, err := obj.NewReader(ctx)
	if err != nil {
		return Blob{}, classify(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return Blob{}, fmt.Errorf("download resume: %w", err)
	}
	name := attrs.Metadata["filename"]
	if name == "" {
		name = Key + ".pdf"
	}
	return Blob{Filename: name, ContentType: attrs.ContentType, Data: data}, nil
}

func classify(err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrNotFound
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Zachkp/portfolio-admin/internal/records"
)

// Collection is the Firestore collection holding HR records.
const Collection = "hrRecords"

// Firestore stores records as documents in the hrRecords collection, one
// document per record with the owner in the userId field.
type Firestore struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreClient creates a Firestore client for the given project ID.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client, coll: client.Collection(Collection)}
}

func (f *Firestore) Create(ctx context.Context, rec records.Record) (string, error) {
	ref, _, err := f.coll.Add(ctx, rec)
	if err != nil {
		return "", classify("create record", err)
	}
	return ref.ID, nil
}

// Update replaces the whole document.
func (f *Firestore) Update(ctx context.Context, id string, rec records.Record) error {
	if _, err := f.coll.Doc(id).Set(ctx, rec); err != nil {
		return classify("update record "+id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, id string) error {
	if _, err := f.coll.Doc(id).Delete(ctx); err != nil {
		return classify("delete record "+id, err)
	}
	return nil
}

func (f *Firestore) Watch(ctx context.Context, ownerID string) (Stream, error) {
	q := f.coll.Where("userId", "==", ownerID)
	return &firestoreStream{it: q.Snapshots(ctx)}, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

type firestoreStream struct {
	it *firestore.QuerySnapshotIterator
}

func (s *firestoreStream) Next() (Snapshot, error) {
	qs, err := s.it.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
			return Snapshot{}, ErrStreamDone
		}
		return Snapshot{}, classify("watch records", err)
	}
	docs, err := qs.Documents.GetAll()
	if err != nil {
		return Snapshot{}, classify("read snapshot", err)
	}

	out := make([]records.Record, 0, len(docs))
	for _, doc := range docs {
		var rec records.Record
		if err := doc.DataTo(&rec); err != nil {
			// One malformed document should not hide the rest.
			log.Printf("skipping record %s: %v", doc.Ref.ID, err)
			continue
		}
		rec.ID = doc.Ref.ID
		out = append(out, rec)
	}
	// Queries come back in document-id order; the panel shows entry order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return Snapshot{Records: out}, nil
}

func (s *firestoreStream) Stop() {
	s.it.Stop()
}

// classify wraps err, mapping gRPC codes onto the package sentinels.
func classify(op string, err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%s: %w: %v", op, ErrPermission, err)
	case codes.NotFound:
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

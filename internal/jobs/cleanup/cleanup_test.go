package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type photoStoreStub struct {
	photos  []model.ListingPhoto
	deleted []uuid.UUID
	cutoff  time.Time
}

func (s *photoStoreStub) ListDeletedListingPhotos(_ context.Context, cutoff time.Time) ([]model.ListingPhoto, error) {
	s.cutoff = cutoff
	return s.photos, nil
}

func (s *photoStoreStub) DeletePhoto(_ context.Context, photoID uuid.UUID) error {
	s.deleted = append(s.deleted, photoID)
	return nil
}

type objectDeleterStub struct {
	deletedKeys []string
}

func (s *objectDeleterStub) Delete(_ context.Context, objectKey string) error {
	s.deletedKeys = append(s.deletedKeys, objectKey)
	return nil
}

func TestRunPurgesPhotosOfDeletedListings(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	photoA := model.ListingPhoto{ID: uuid.New(), ListingID: uuid.New(), ObjectKey: "listings/a/photos/1.jpg"}
	photoB := model.ListingPhoto{ID: uuid.New(), ListingID: uuid.New(), ObjectKey: "listings/b/photos/2.jpg"}

	store := &photoStoreStub{photos: []model.ListingPhoto{photoA, photoB}}
	deleter := &objectDeleterStub{}

	job := New(store, deleter, 30*24*time.Hour, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	wantCutoff := now.Add(-30 * 24 * time.Hour)
	if !store.cutoff.Equal(wantCutoff) {
		t.Fatalf("unexpected cutoff: got %v want %v", store.cutoff, wantCutoff)
	}
	if len(deleter.deletedKeys) != 2 {
		t.Fatalf("expected 2 deleted objects, got %d", len(deleter.deletedKeys))
	}
	if len(store.deleted) != 2 {
		t.Fatalf("expected 2 deleted records, got %d", len(store.deleted))
	}
	if store.deleted[0] != photoA.ID || store.deleted[1] != photoB.ID {
		t.Fatalf("unexpected deleted record order: %v", store.deleted)
	}
}

func TestRunIsNoopWithoutDependencies(t *testing.T) {
	job := New(nil, nil, 0, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}
}

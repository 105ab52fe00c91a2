package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

type listingStoreStub struct {
	listings map[uuid.UUID]*model.Listing
}

func newListingStoreStub() *listingStoreStub {
	return &listingStoreStub{listings: map[uuid.UUID]*model.Listing{}}
}

func (s *listingStoreStub) Create(_ context.Context, listing model.Listing, now time.Time) (model.Listing, error) {
	listing.ID = uuid.New()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	s.listings[listing.ID] = &listing
	return listing, nil
}

func (s *listingStoreStub) GetByID(_ context.Context, listingID uuid.UUID) (model.Listing, error) {
	l, ok := s.listings[listingID]
	if !ok {
		return model.Listing{}, pgrepo.ErrListingNotFound
	}
	return *l, nil
}

func (s *listingStoreStub) ListByHost(_ context.Context, hostID uuid.UUID, limit, offset int) ([]model.Listing, int, error) {
	var items []model.Listing
	for _, l := range s.listings {
		if l.HostID == hostID {
			items = append(items, *l)
		}
	}
	total := len(items)
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (s *listingStoreStub) UpdateStatus(_ context.Context, listingID, hostID uuid.UUID, status enums.ListingStatus, now time.Time) error {
	l, ok := s.listings[listingID]
	if !ok || l.HostID != hostID {
		return pgrepo.ErrListingNotFound
	}
	l.Status = status
	l.UpdatedAt = now
	return nil
}

func validInput(hostID uuid.UUID) CreateInput {
	return CreateInput{
		HostID:      hostID,
		Title:       "2BHK near metro",
		Locality:    "Indiranagar",
		City:        "Bengaluru",
		State:       "Karnataka",
		RentMonthly: 32000,
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newListingStoreStub())
	ctx := context.Background()
	host := uuid.New()

	input := validInput(host)
	input.Title = "  "
	if _, err := svc.Create(ctx, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title: expected ErrValidation, got %v", err)
	}

	input = validInput(host)
	input.RentMonthly = 0
	if _, err := svc.Create(ctx, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero rent: expected ErrValidation, got %v", err)
	}

	created, err := svc.Create(ctx, validInput(host))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.ListingStatusActive {
		t.Fatalf("new listing should be active, got %s", created.Status)
	}
}

func TestUpdateStatusIsOwnerScoped(t *testing.T) {
	store := newListingStoreStub()
	svc := NewService(store)
	ctx := context.Background()
	host := uuid.New()

	created, err := svc.Create(ctx, validInput(host))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateStatus(ctx, created.ID, uuid.New(), enums.ListingStatusPaused); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign status update: expected ErrNotFound, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, created.ID, host, enums.ListingStatus("bogus")); !errors.Is(err, ErrValidation) {
		t.Fatalf("bogus status: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, created.ID, host, enums.ListingStatusRented); err != nil {
		t.Fatalf("owner status update: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != enums.ListingStatusRented {
		t.Fatalf("status not applied, got %s", got.Status)
	}
}

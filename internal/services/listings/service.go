package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("listing not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListingStore interface {
	Create(ctx context.Context, listing model.Listing, now time.Time) (model.Listing, error)
	GetByID(ctx context.Context, listingID uuid.UUID) (model.Listing, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]model.Listing, int, error)
	UpdateStatus(ctx context.Context, listingID, hostID uuid.UUID, status enums.ListingStatus, now time.Time) error
}

type CreateInput struct {
	HostID          uuid.UUID
	Title           string
	Description     string
	Locality        string
	City            string
	State           string
	PropertyType    string
	Configuration   string
	Furnishing      string
	TotalAreaSqft   int
	RentMonthly     float64
	DepositAmount   float64
	AvailableFrom   *time.Time
	PreferredTenant string
}

type ListResult struct {
	Items []model.Listing
	Total int
	Page  int
	Limit int
}

type Service struct {
	store ListingStore
	now   func() time.Time
}

func NewService(store ListingStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (model.Listing, error) {
	if input.HostID == uuid.Nil {
		return model.Listing{}, ErrValidation
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.Locality) == "" {
		return model.Listing{}, ErrValidation
	}
	if input.RentMonthly <= 0 || input.DepositAmount < 0 || input.TotalAreaSqft < 0 {
		return model.Listing{}, ErrValidation
	}
	if s.store == nil {
		return model.Listing{}, fmt.Errorf("listing store is nil")
	}

	listing := model.Listing{
		HostID:          input.HostID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Locality:        strings.TrimSpace(input.Locality),
		City:            strings.TrimSpace(input.City),
		State:           strings.TrimSpace(input.State),
		PropertyType:    input.PropertyType,
		Configuration:   input.Configuration,
		Furnishing:      input.Furnishing,
		TotalAreaSqft:   input.TotalAreaSqft,
		RentMonthly:     input.RentMonthly,
		DepositAmount:   input.DepositAmount,
		AvailableFrom:   input.AvailableFrom,
		PreferredTenant: input.PreferredTenant,
		Status:          enums.ListingStatusActive,
	}

	created, err := s.store.Create(ctx, listing, s.now().UTC())
	if err != nil {
		return model.Listing{}, err
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, listingID uuid.UUID) (model.Listing, error) {
	if listingID == uuid.Nil {
		return model.Listing{}, ErrValidation
	}
	if s.store == nil {
		return model.Listing{}, fmt.Errorf("listing store is nil")
	}

	listing, err := s.store.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return model.Listing{}, ErrNotFound
		}
		return model.Listing{}, err
	}

	return listing, nil
}

func (s *Service) ListMine(ctx context.Context, hostID uuid.UUID, page, limit int) (ListResult, error) {
	if hostID == uuid.Nil {
		return ListResult{}, ErrValidation
	}
	if s.store == nil {
		return ListResult{}, fmt.Errorf("listing store is nil")
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.store.ListByHost(ctx, hostID, limit, (page-1)*limit)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// UpdateStatus is owner scoped: a host can only change their own listing.
func (s *Service) UpdateStatus(ctx context.Context, listingID, hostID uuid.UUID, status enums.ListingStatus) error {
	if listingID == uuid.Nil || hostID == uuid.Nil {
		return ErrValidation
	}
	switch status {
	case enums.ListingStatusActive, enums.ListingStatusPaused, enums.ListingStatusRented, enums.ListingStatusDeleted:
	default:
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("listing store is nil")
	}

	if err := s.store.UpdateStatus(ctx, listingID, hostID, status, s.now().UTC()); err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

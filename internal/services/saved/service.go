package saved

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidTarget = errors.New("exactly one saved target is required")
	ErrAlreadySaved  = errors.New("item already saved")
	ErrNotFound      = errors.New("saved item not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SavedStore interface {
	Create(ctx context.Context, item model.SavedItem, now time.Time) (model.SavedItem, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.SavedItem, int, error)
	Delete(ctx context.Context, savedID, userID uuid.UUID) error
}

type ListResult struct {
	Items []model.SavedItem
	Total int
	Page  int
	Limit int
}

type Service struct {
	store SavedStore
	now   func() time.Time
}

func NewService(store SavedStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Save(ctx context.Context, userID uuid.UUID, listingID, requirementID *uuid.UUID, notes string) (model.SavedItem, error) {
	if userID == uuid.Nil {
		return model.SavedItem{}, ErrValidation
	}
	if (listingID == nil) == (requirementID == nil) {
		return model.SavedItem{}, ErrInvalidTarget
	}
	if s.store == nil {
		return model.SavedItem{}, fmt.Errorf("saved store is nil")
	}

	item, err := s.store.Create(ctx, model.SavedItem{
		UserID:        userID,
		ListingID:     listingID,
		RequirementID: requirementID,
		Notes:         notes,
	}, s.now().UTC())
	if err != nil {
		if errors.Is(err, pgrepo.ErrAlreadySaved) {
			return model.SavedItem{}, ErrAlreadySaved
		}
		return model.SavedItem{}, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) (ListResult, error) {
	if userID == uuid.Nil {
		return ListResult{}, ErrValidation
	}
	if s.store == nil {
		return ListResult{}, fmt.Errorf("saved store is nil")
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

	items, total, err := s.store.ListForUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *Service) Delete(ctx context.Context, userID, savedID uuid.UUID) error {
	if userID == uuid.Nil || savedID == uuid.Nil {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("saved store is nil")
	}

	if err := s.store.Delete(ctx, savedID, userID); err != nil {
		if errors.Is(err, pgrepo.ErrSavedItemNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type ListingSearcher interface {
	Search(ctx context.Context, q pgrepo.ListingFeedQuery) ([]model.Listing, int, error)
}

type RequirementSearcher interface {
	Search(ctx context.Context, q pgrepo.RequirementFeedQuery) ([]model.Requirement, int, error)
}

type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

type ListingPage struct {
	Items []model.Listing
	Total int
	Page  int
	Limit int
}

type RequirementPage struct {
	Items []model.Requirement
	Total int
	Page  int
	Limit int
}

type Service struct {
	listings     ListingSearcher
	requirements RequirementSearcher
	cfg          Config
}

func NewService(listings ListingSearcher, requirements RequirementSearcher, cfg Config) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}

	return &Service{
		listings:     listings,
		requirements: requirements,
		cfg:          cfg,
	}
}

type ListingQuery struct {
	BudgetMin     *float64
	BudgetMax     *float64
	City          string
	Localities    []string
	PropertyTypes []string
	Furnishing    []string
	Sort          string
	Page          int
	Limit         int
}

func (s *Service) Listings(ctx context.Context, q ListingQuery) (ListingPage, error) {
	if s.listings == nil {
		return ListingPage{}, fmt.Errorf("listing searcher is nil")
	}
	if err := validateBudget(q.BudgetMin, q.BudgetMax); err != nil {
		return ListingPage{}, err
	}
	switch q.Sort {
	case "", "newest", "price_low", "price_high":
	default:
		return ListingPage{}, ErrValidation
	}

	page, limit := s.clampPage(q.Page, q.Limit)
	items, total, err := s.listings.Search(ctx, pgrepo.ListingFeedQuery{
		BudgetMin:     q.BudgetMin,
		BudgetMax:     q.BudgetMax,
		City:          q.City,
		Localities:    q.Localities,
		PropertyTypes: q.PropertyTypes,
		Furnishing:    q.Furnishing,
		Sort:          q.Sort,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	})
	if err != nil {
		return ListingPage{}, err
	}

	return ListingPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type RequirementQuery struct {
	BudgetMin *float64
	BudgetMax *float64
	City      string
	Page      int
	Limit     int
}

func (s *Service) Requirements(ctx context.Context, q RequirementQuery) (RequirementPage, error) {
	if s.requirements == nil {
		return RequirementPage{}, fmt.Errorf("requirement searcher is nil")
	}
	if err := validateBudget(q.BudgetMin, q.BudgetMax); err != nil {
		return RequirementPage{}, err
	}

	page, limit := s.clampPage(q.Page, q.Limit)
	items, total, err := s.requirements.Search(ctx, pgrepo.RequirementFeedQuery{
		BudgetMin: q.BudgetMin,
		BudgetMax: q.BudgetMax,
		City:      q.City,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return RequirementPage{}, err
	}

	return RequirementPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return page, limit
}

func validateBudget(min, max *float64) error {
	if min != nil && *min < 0 {
		return ErrValidation
	}
	if max != nil && *max <= 0 {
		return ErrValidation
	}
	if min != nil && max != nil && *min > *max {
		return ErrValidation
	}
	return nil
}

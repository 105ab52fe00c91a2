package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

type listingSearcherStub struct {
	lastQuery pgrepo.ListingFeedQuery
	items     []model.Listing
	total     int
}

func (s *listingSearcherStub) Search(_ context.Context, q pgrepo.ListingFeedQuery) ([]model.Listing, int, error) {
	s.lastQuery = q
	return s.items, s.total, nil
}

type requirementSearcherStub struct {
	lastQuery pgrepo.RequirementFeedQuery
	items     []model.Requirement
	total     int
}

func (s *requirementSearcherStub) Search(_ context.Context, q pgrepo.RequirementFeedQuery) ([]model.Requirement, int, error) {
	s.lastQuery = q
	return s.items, s.total, nil
}

func TestListingsRejectsInvalidSortAndBudget(t *testing.T) {
	svc := NewService(&listingSearcherStub{}, &requirementSearcherStub{}, Config{})
	ctx := context.Background()

	if _, err := svc.Listings(ctx, ListingQuery{Sort: "cheapest"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown sort, got %v", err)
	}

	minB := 20000.0
	maxB := 10000.0
	if _, err := svc.Listings(ctx, ListingQuery{BudgetMin: &minB, BudgetMax: &maxB}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted budget, got %v", err)
	}
}

func TestListingsClampsPagingAndForwardsFilters(t *testing.T) {
	searcher := &listingSearcherStub{total: 7}
	svc := NewService(searcher, &requirementSearcherStub{}, Config{DefaultPageSize: 10, MaxPageSize: 25})
	ctx := context.Background()

	res, err := svc.Listings(ctx, ListingQuery{
		City:       "Pune",
		Localities: []string{"Baner", "Aundh"},
		Sort:       "price_low",
		Page:       0,
		Limit:      100,
	})
	if err != nil {
		t.Fatalf("listings feed: %v", err)
	}

	if res.Page != 1 || res.Limit != 25 {
		t.Fatalf("unexpected paging: page %d limit %d", res.Page, res.Limit)
	}
	if res.Total != 7 {
		t.Fatalf("unexpected total: got %d want 7", res.Total)
	}
	if searcher.lastQuery.City != "Pune" || len(searcher.lastQuery.Localities) != 2 {
		t.Fatalf("filters not forwarded: %+v", searcher.lastQuery)
	}
	if searcher.lastQuery.Sort != "price_low" {
		t.Fatalf("sort not forwarded: %q", searcher.lastQuery.Sort)
	}
	if searcher.lastQuery.Limit != 25 || searcher.lastQuery.Offset != 0 {
		t.Fatalf("unexpected limit/offset: %d/%d", searcher.lastQuery.Limit, searcher.lastQuery.Offset)
	}
}

func TestRequirementsComputesOffsetFromPage(t *testing.T) {
	searcher := &requirementSearcherStub{}
	svc := NewService(&listingSearcherStub{}, searcher, Config{DefaultPageSize: 10, MaxPageSize: 50})

	res, err := svc.Requirements(context.Background(), RequirementQuery{City: "Mumbai", Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("requirements feed: %v", err)
	}

	if res.Page != 3 || res.Limit != 10 {
		t.Fatalf("unexpected paging: page %d limit %d", res.Page, res.Limit)
	}
	if searcher.lastQuery.Offset != 20 {
		t.Fatalf("unexpected offset: got %d want 20", searcher.lastQuery.Offset)
	}
	if searcher.lastQuery.City != "Mumbai" {
		t.Fatalf("city not forwarded: %q", searcher.lastQuery.City)
	}
}

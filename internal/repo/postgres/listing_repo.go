package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepo struct {
	pool *pgxpool.Pool
}

func NewListingRepo(pool *pgxpool.Pool) *ListingRepo {
	return &ListingRepo{pool: pool}
}

type ListingFeedQuery struct {
	BudgetMin     *float64
	BudgetMax     *float64
	City          string
	Localities    []string
	PropertyTypes []string
	Furnishing    []string
	Sort          string
	Limit         int
	Offset        int
}

const listingColumns = `
listing_id, host_id, title, COALESCE(description, ''), locality, city, state,
COALESCE(property_type, ''), COALESCE(configuration, ''), COALESCE(furnishing, ''),
COALESCE(total_area_sqft, 0), rent_monthly, COALESCE(deposit_amount, 0),
available_from, COALESCE(preferred_tenant, ''), status, created_at, updated_at
`

func scanListing(row pgx.Row) (model.Listing, error) {
	var l model.Listing
	err := row.Scan(
		&l.ID,
		&l.HostID,
		&l.Title,
		&l.Description,
		&l.Locality,
		&l.City,
		&l.State,
		&l.PropertyType,
		&l.Configuration,
		&l.Furnishing,
		&l.TotalAreaSqft,
		&l.RentMonthly,
		&l.DepositAmount,
		&l.AvailableFrom,
		&l.PreferredTenant,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func (r *ListingRepo) Create(ctx context.Context, listing model.Listing, now time.Time) (model.Listing, error) {
	if listing.HostID == uuid.Nil || strings.TrimSpace(listing.Title) == "" {
		return model.Listing{}, fmt.Errorf("invalid listing payload")
	}
	if r.pool == nil {
		return model.Listing{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	created, err := scanListing(r.pool.QueryRow(ctx, `
INSERT INTO property_listings (
	listing_id, host_id, title, description, locality, city, state,
	property_type, configuration, furnishing, total_area_sqft,
	rent_monthly, deposit_amount, available_from, preferred_tenant,
	status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 'active', $16, $16)
RETURNING `+listingColumns,
		uuid.New(), listing.HostID, listing.Title, listing.Description,
		listing.Locality, listing.City, listing.State,
		listing.PropertyType, listing.Configuration, listing.Furnishing, listing.TotalAreaSqft,
		listing.RentMonthly, listing.DepositAmount, listing.AvailableFrom, listing.PreferredTenant,
		now.UTC()))
	if err != nil {
		return model.Listing{}, fmt.Errorf("create listing: %w", err)
	}

	return created, nil
}

func (r *ListingRepo) GetByID(ctx context.Context, listingID uuid.UUID) (model.Listing, error) {
	if listingID == uuid.Nil {
		return model.Listing{}, fmt.Errorf("invalid listing id")
	}
	if r.pool == nil {
		return model.Listing{}, ErrListingNotFound
	}

	l, err := scanListing(r.pool.QueryRow(ctx, `
SELECT `+listingColumns+`
FROM property_listings
WHERE listing_id = $1
LIMIT 1
`, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Listing{}, ErrListingNotFound
		}
		return model.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	return l, nil
}

func (r *ListingRepo) ListByHost(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]model.Listing, int, error) {
	if hostID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid host id")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if r.pool == nil {
		return []model.Listing{}, 0, nil
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM property_listings WHERE host_id = $1 AND status <> 'deleted'
`, hostID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count host listings: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+listingColumns+`
FROM property_listings
WHERE host_id = $1 AND status <> 'deleted'
ORDER BY created_at DESC, listing_id DESC
LIMIT $2 OFFSET $3
`, hostID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list host listings: %w", err)
	}
	defer rows.Close()

	items := make([]model.Listing, 0, limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan host listing: %w", err)
		}
		items = append(items, l)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate host listings: %w", rows.Err())
	}

	return items, total, nil
}

func (r *ListingRepo) UpdateStatus(ctx context.Context, listingID, hostID uuid.UUID, status enums.ListingStatus, now time.Time) error {
	if listingID == uuid.Nil || hostID == uuid.Nil {
		return fmt.Errorf("invalid listing status payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := r.pool.Exec(ctx, `
UPDATE property_listings
SET status = $3, updated_at = $4
WHERE listing_id = $1 AND host_id = $2
`, listingID, hostID, string(status), now.UTC())
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrListingNotFound
	}

	return nil
}

// Search returns active listings matching the feed filters. City matching is
// a case-insensitive substring match; localities, property types and
// furnishing are any-of filters.
func (r *ListingRepo) Search(ctx context.Context, q ListingFeedQuery) ([]model.Listing, int, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if r.pool == nil {
		return []model.Listing{}, 0, nil
	}

	applyBudgetMin := q.BudgetMin != nil
	applyBudgetMax := q.BudgetMax != nil
	budgetMin := 0.0
	if applyBudgetMin {
		budgetMin = *q.BudgetMin
	}
	budgetMax := 0.0
	if applyBudgetMax {
		budgetMax = *q.BudgetMax
	}
	city := strings.TrimSpace(q.City)
	applyCity := city != ""
	applyLocalities := len(q.Localities) > 0
	applyTypes := len(q.PropertyTypes) > 0
	applyFurnishing := len(q.Furnishing) > 0

	orderBy := "created_at DESC, listing_id DESC"
	switch q.Sort {
	case "price_low":
		orderBy = "rent_monthly ASC, listing_id DESC"
	case "price_high":
		orderBy = "rent_monthly DESC, listing_id DESC"
	}

	where := `
	status = 'active'
	AND ($1::boolean = FALSE OR rent_monthly >= $2)
	AND ($3::boolean = FALSE OR rent_monthly <= $4)
	AND ($5::boolean = FALSE OR city ILIKE '%' || $6 || '%')
	AND ($7::boolean = FALSE OR locality = ANY($8::text[]))
	AND ($9::boolean = FALSE OR property_type = ANY($10::text[]))
	AND ($11::boolean = FALSE OR furnishing = ANY($12::text[]))
`
	args := []any{
		applyBudgetMin, budgetMin,
		applyBudgetMax, budgetMax,
		applyCity, city,
		applyLocalities, q.Localities,
		applyTypes, q.PropertyTypes,
		applyFurnishing, q.Furnishing,
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM property_listings WHERE`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listing feed: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+listingColumns+`
FROM property_listings
WHERE`+where+`
ORDER BY `+orderBy+`
LIMIT $13 OFFSET $14
`, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search listing feed: %w", err)
	}
	defer rows.Close()

	items := make([]model.Listing, 0, q.Limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan feed listing: %w", err)
		}
		items = append(items, l)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate feed listings: %w", rows.Err())
	}

	return items, total, nil
}

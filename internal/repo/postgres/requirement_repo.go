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

var ErrRequirementNotFound = errors.New("requirement not found")

type RequirementRepo struct {
	pool *pgxpool.Pool
}

func NewRequirementRepo(pool *pgxpool.Pool) *RequirementRepo {
	return &RequirementRepo{pool: pool}
}

type RequirementFeedQuery struct {
	BudgetMin *float64
	BudgetMax *float64
	City      string
	Limit     int
	Offset    int
}

const requirementColumns = `
requirement_id, tenant_id, title, budget_min, budget_max, localities, city,
COALESCE(occupancy, ''), move_in_date, status, created_at, updated_at
`

func scanRequirement(row pgx.Row) (model.Requirement, error) {
	var rec model.Requirement
	err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.Title,
		&rec.BudgetMin,
		&rec.BudgetMax,
		&rec.Localities,
		&rec.City,
		&rec.Occupancy,
		&rec.MoveInDate,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func (r *RequirementRepo) Create(ctx context.Context, req model.Requirement, now time.Time) (model.Requirement, error) {
	if req.TenantID == uuid.Nil || strings.TrimSpace(req.Title) == "" {
		return model.Requirement{}, fmt.Errorf("invalid requirement payload")
	}
	if r.pool == nil {
		return model.Requirement{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	created, err := scanRequirement(r.pool.QueryRow(ctx, `
INSERT INTO tenant_requirements (
	requirement_id, tenant_id, title, budget_min, budget_max,
	localities, city, occupancy, move_in_date, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', $10, $10)
RETURNING `+requirementColumns,
		uuid.New(), req.TenantID, req.Title, req.BudgetMin, req.BudgetMax,
		req.Localities, req.City, req.Occupancy, req.MoveInDate, now.UTC()))
	if err != nil {
		return model.Requirement{}, fmt.Errorf("create requirement: %w", err)
	}

	return created, nil
}

func (r *RequirementRepo) GetByID(ctx context.Context, requirementID uuid.UUID) (model.Requirement, error) {
	if requirementID == uuid.Nil {
		return model.Requirement{}, fmt.Errorf("invalid requirement id")
	}
	if r.pool == nil {
		return model.Requirement{}, ErrRequirementNotFound
	}

	rec, err := scanRequirement(r.pool.QueryRow(ctx, `
SELECT `+requirementColumns+`
FROM tenant_requirements
WHERE requirement_id = $1
LIMIT 1
`, requirementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Requirement{}, ErrRequirementNotFound
		}
		return model.Requirement{}, fmt.Errorf("get requirement: %w", err)
	}

	return rec, nil
}

func (r *RequirementRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.Requirement, int, error) {
	if tenantID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid tenant id")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if r.pool == nil {
		return []model.Requirement{}, 0, nil
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM tenant_requirements WHERE tenant_id = $1
`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenant requirements: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+requirementColumns+`
FROM tenant_requirements
WHERE tenant_id = $1
ORDER BY created_at DESC, requirement_id DESC
LIMIT $2 OFFSET $3
`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenant requirements: %w", err)
	}
	defer rows.Close()

	items := make([]model.Requirement, 0, limit)
	for rows.Next() {
		rec, err := scanRequirement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tenant requirement: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate tenant requirements: %w", rows.Err())
	}

	return items, total, nil
}

func (r *RequirementRepo) UpdateStatus(ctx context.Context, requirementID, tenantID uuid.UUID, status enums.RequirementStatus, now time.Time) error {
	if requirementID == uuid.Nil || tenantID == uuid.Nil {
		return fmt.Errorf("invalid requirement status payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := r.pool.Exec(ctx, `
UPDATE tenant_requirements
SET status = $3, updated_at = $4
WHERE requirement_id = $1 AND tenant_id = $2
`, requirementID, tenantID, string(status), now.UTC())
	if err != nil {
		return fmt.Errorf("update requirement status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRequirementNotFound
	}

	return nil
}

// Search returns active requirements whose budget range overlaps the given
// bounds, for the host-side discovery feed.
func (r *RequirementRepo) Search(ctx context.Context, q RequirementFeedQuery) ([]model.Requirement, int, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if r.pool == nil {
		return []model.Requirement{}, 0, nil
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

	where := `
	status = 'active'
	AND ($1::boolean = FALSE OR budget_max >= $2)
	AND ($3::boolean = FALSE OR budget_min <= $4)
	AND ($5::boolean = FALSE OR city ILIKE '%' || $6 || '%')
`
	args := []any{applyBudgetMin, budgetMin, applyBudgetMax, budgetMax, applyCity, city}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenant_requirements WHERE`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requirement feed: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+requirementColumns+`
FROM tenant_requirements
WHERE`+where+`
ORDER BY created_at DESC, requirement_id DESC
LIMIT $7 OFFSET $8
`, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search requirement feed: %w", err)
	}
	defer rows.Close()

	items := make([]model.Requirement, 0, q.Limit)
	for rows.Next() {
		rec, err := scanRequirement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan feed requirement: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate feed requirements: %w", rows.Err())
	}

	return items, total, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

var ErrMatchNotFound = errors.New("match not found")

const uniqueViolationCode = "23505"

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

type MatchKey struct {
	TenantID      uuid.UUID
	HostID        uuid.UUID
	ListingID     *uuid.UUID
	RequirementID *uuid.UUID
}

const matchColumns = `
match_id, tenant_id, host_id, listing_id, requirement_id, compatibility_score,
match_status, contact_shared, contact_shared_at, chat_enabled,
visit_scheduled, visit_date, visit_status,
deal_closed, deal_closed_at, deal_amount, matched_at, unmatched_at
`

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID,
		&m.TenantID,
		&m.HostID,
		&m.ListingID,
		&m.RequirementID,
		&m.CompatibilityScore,
		&m.Status,
		&m.ContactShared,
		&m.ContactSharedAt,
		&m.ChatEnabled,
		&m.VisitScheduled,
		&m.VisitDate,
		&m.VisitStatus,
		&m.DealClosed,
		&m.DealClosedAt,
		&m.DealAmount,
		&m.MatchedAt,
		&m.UnmatchedAt,
	)
	return m, err
}

// GetOrCreate returns the match for the pair-and-content key, inserting it if
// absent. The existing-match lookup is scoped by listing id when the
// triggering swipe carried one, otherwise by requirement id. A unique
// violation on insert means a concurrent reconciliation won the race; the row
// it inserted is returned instead, so callers never observe the constraint
// error.
func (r *MatchRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, key MatchKey, now time.Time) (model.Match, bool, error) {
	if tx == nil {
		return model.Match{}, false, fmt.Errorf("transaction is required")
	}
	if key.TenantID == uuid.Nil || key.HostID == uuid.Nil {
		return model.Match{}, false, fmt.Errorf("invalid match key")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	existing, err := r.findByKey(ctx, tx, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return model.Match{}, false, err
	}

	created, err := scanMatch(tx.QueryRow(ctx, `
INSERT INTO matches (
	match_id,
	tenant_id,
	host_id,
	listing_id,
	requirement_id,
	match_status,
	contact_shared,
	contact_shared_at,
	chat_enabled,
	matched_at
) VALUES ($1, $2, $3, $4, $5, 'active', TRUE, $6, TRUE, $6)
RETURNING `+matchColumns, uuid.New(), key.TenantID, key.HostID, key.ListingID, key.RequirementID, now.UTC()))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			existing, lookupErr := r.findByKey(ctx, tx, key)
			if lookupErr != nil {
				return model.Match{}, false, fmt.Errorf("lookup match after unique violation: %w", lookupErr)
			}
			return existing, false, nil
		}
		return model.Match{}, false, fmt.Errorf("create match: %w", err)
	}

	return created, true, nil
}

func (r *MatchRepo) findByKey(ctx context.Context, tx pgx.Tx, key MatchKey) (model.Match, error) {
	query := `
SELECT ` + matchColumns + `
FROM matches
WHERE tenant_id = $1 AND host_id = $2 AND listing_id = $3
LIMIT 1
`
	var content *uuid.UUID
	if key.ListingID != nil {
		content = key.ListingID
	} else {
		query = `
SELECT ` + matchColumns + `
FROM matches
WHERE tenant_id = $1 AND host_id = $2 AND listing_id IS NULL AND requirement_id = $3
LIMIT 1
`
		content = key.RequirementID
	}
	if content == nil {
		return model.Match{}, fmt.Errorf("match key has no content id")
	}

	m, err := scanMatch(tx.QueryRow(ctx, query, key.TenantID, key.HostID, *content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("find match by key: %w", err)
	}

	return m, nil
}

// GetForUser loads a match only when userID is one of its two parties.
func (r *MatchRepo) GetForUser(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	if matchID == uuid.Nil || userID == uuid.Nil {
		return model.Match{}, fmt.Errorf("invalid match lookup payload")
	}
	if r.pool == nil {
		return model.Match{}, ErrMatchNotFound
	}

	m, err := scanMatch(r.pool.QueryRow(ctx, `
SELECT `+matchColumns+`
FROM matches
WHERE match_id = $1 AND (tenant_id = $2 OR host_id = $2)
LIMIT 1
`, matchID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match for user: %w", err)
	}

	return m, nil
}

func (r *MatchRepo) GetForUserTx(ctx context.Context, tx pgx.Tx, matchID, userID uuid.UUID) (model.Match, error) {
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}
	if matchID == uuid.Nil || userID == uuid.Nil {
		return model.Match{}, fmt.Errorf("invalid match lookup payload")
	}

	m, err := scanMatch(tx.QueryRow(ctx, `
SELECT `+matchColumns+`
FROM matches
WHERE match_id = $1 AND (tenant_id = $2 OR host_id = $2)
LIMIT 1
FOR UPDATE
`, matchID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match for update: %w", err)
	}

	return m, nil
}

func (r *MatchRepo) ListForUser(ctx context.Context, userID uuid.UUID, status enums.MatchStatus, limit, offset int) ([]model.Match, int, error) {
	if userID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if r.pool == nil {
		return []model.Match{}, 0, nil
	}

	applyStatus := status != ""

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM matches
WHERE (tenant_id = $1 OR host_id = $1)
	AND ($2::boolean = FALSE OR match_status = $3)
`, userID, applyStatus, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+matchColumns+`
FROM matches
WHERE (tenant_id = $1 OR host_id = $1)
	AND ($2::boolean = FALSE OR match_status = $3)
ORDER BY matched_at DESC, match_id DESC
LIMIT $4 OFFSET $5
`, userID, applyStatus, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, total, nil
}

func (r *MatchRepo) ScheduleVisit(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, visitDate time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET visit_scheduled = TRUE,
	visit_date = $2,
	visit_status = CASE WHEN visit_scheduled THEN 'rescheduled' ELSE 'scheduled' END
WHERE match_id = $1 AND match_status = 'active'
`, matchID, visitDate.UTC())
	if err != nil {
		return fmt.Errorf("schedule visit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func (r *MatchRepo) UpdateVisitStatus(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, status enums.VisitStatus) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET visit_status = $2
WHERE match_id = $1 AND match_status = 'active' AND visit_scheduled
`, matchID, string(status))
	if err != nil {
		return fmt.Errorf("update visit status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func (r *MatchRepo) CloseDeal(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, amount float64, now time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET deal_closed = TRUE, deal_closed_at = $2, deal_amount = $3, match_status = 'deal_closed'
WHERE match_id = $1 AND match_status = 'active'
`, matchID, now.UTC(), amount)
	if err != nil {
		return fmt.Errorf("close deal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func (r *MatchRepo) Unmatch(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, now time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET match_status = 'unmatched', unmatched_at = $2
WHERE match_id = $1 AND match_status = 'active'
`, matchID, now.UTC())
	if err != nil {
		return fmt.Errorf("unmatch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

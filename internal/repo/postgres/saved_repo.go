package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

var (
	ErrSavedItemNotFound = errors.New("saved item not found")
	ErrAlreadySaved      = errors.New("item already saved")
)

type SavedRepo struct {
	pool *pgxpool.Pool
}

func NewSavedRepo(pool *pgxpool.Pool) *SavedRepo {
	return &SavedRepo{pool: pool}
}

func (r *SavedRepo) Create(ctx context.Context, item model.SavedItem, now time.Time) (model.SavedItem, error) {
	if item.UserID == uuid.Nil {
		return model.SavedItem{}, fmt.Errorf("invalid saved item payload")
	}
	if (item.ListingID == nil) == (item.RequirementID == nil) {
		return model.SavedItem{}, fmt.Errorf("exactly one saved target is required")
	}
	if r.pool == nil {
		return model.SavedItem{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec model.SavedItem
	err := r.pool.QueryRow(ctx, `
INSERT INTO saved_items (
	saved_id,
	user_id,
	saved_listing_id,
	saved_requirement_id,
	notes,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING saved_id, user_id, saved_listing_id, saved_requirement_id, COALESCE(notes, ''), created_at
`, uuid.New(), item.UserID, item.ListingID, item.RequirementID, item.Notes, now.UTC()).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ListingID,
		&rec.RequirementID,
		&rec.Notes,
		&rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.SavedItem{}, ErrAlreadySaved
		}
		return model.SavedItem{}, fmt.Errorf("create saved item: %w", err)
	}

	return rec, nil
}

func (r *SavedRepo) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.SavedItem, int, error) {
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
		return []model.SavedItem{}, 0, nil
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM saved_items WHERE user_id = $1
`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count saved items: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT saved_id, user_id, saved_listing_id, saved_requirement_id, COALESCE(notes, ''), created_at
FROM saved_items
WHERE user_id = $1
ORDER BY created_at DESC, saved_id DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved items: %w", err)
	}
	defer rows.Close()

	items := make([]model.SavedItem, 0, limit)
	for rows.Next() {
		var rec model.SavedItem
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ListingID,
			&rec.RequirementID,
			&rec.Notes,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan saved item: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate saved items: %w", rows.Err())
	}

	return items, total, nil
}

func (r *SavedRepo) Delete(ctx context.Context, savedID, userID uuid.UUID) error {
	if savedID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("invalid saved item delete payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM saved_items
WHERE saved_id = $1 AND user_id = $2
`, savedID, userID)
	if err != nil {
		return fmt.Errorf("delete saved item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSavedItemNotFound
	}

	return nil
}

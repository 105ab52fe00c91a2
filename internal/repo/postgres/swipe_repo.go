package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

var ErrSwipeNotFound = errors.New("swipe not found")

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// AcquirePairLock serializes swipe recording and match reconciliation for an
// unordered user pair within the current transaction. The lock is released at
// commit or rollback.
func (r *SwipeRepo) AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB uuid.UUID) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	_, err := tx.Exec(ctx, `
SELECT pg_advisory_xact_lock(
	hashtextextended(least($1::text, $2::text) || ':' || greatest($1::text, $2::text), 0)
)
`, userA, userB)
	if err != nil {
		return fmt.Errorf("acquire pair lock: %w", err)
	}

	return nil
}

// GetForTarget looks up the actor's existing swipe toward one content target.
// Exactly one of listingID/requirementID must be non-nil.
func (r *SwipeRepo) GetForTarget(ctx context.Context, tx pgx.Tx, swiperID uuid.UUID, listingID, requirementID *uuid.UUID) (model.Swipe, error) {
	if tx == nil {
		return model.Swipe{}, fmt.Errorf("transaction is required")
	}
	if (listingID == nil) == (requirementID == nil) {
		return model.Swipe{}, fmt.Errorf("exactly one swipe target is required")
	}

	query := `
SELECT swipe_id, swiper_id, COALESCE(swiper_type, ''), swiped_listing_id, swiped_requirement_id, swiped_user_id, action, created_at
FROM swipe_actions
WHERE swiper_id = $1 AND swiped_listing_id = $2
LIMIT 1
`
	target := listingID
	if requirementID != nil {
		query = `
SELECT swipe_id, swiper_id, COALESCE(swiper_type, ''), swiped_listing_id, swiped_requirement_id, swiped_user_id, action, created_at
FROM swipe_actions
WHERE swiper_id = $1 AND swiped_requirement_id = $2
LIMIT 1
`
		target = requirementID
	}

	var rec model.Swipe
	err := tx.QueryRow(ctx, query, swiperID, *target).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwiperType,
		&rec.ListingID,
		&rec.RequirementID,
		&rec.TargetUserID,
		&rec.Action,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Swipe{}, ErrSwipeNotFound
		}
		return model.Swipe{}, fmt.Errorf("get swipe for target: %w", err)
	}

	return rec, nil
}

func (r *SwipeRepo) Insert(ctx context.Context, tx pgx.Tx, swipe model.Swipe, now time.Time) (model.Swipe, error) {
	if tx == nil {
		return model.Swipe{}, fmt.Errorf("transaction is required")
	}
	if swipe.SwiperID == uuid.Nil || swipe.TargetUserID == uuid.Nil {
		return model.Swipe{}, fmt.Errorf("invalid swipe payload")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec model.Swipe
	err := tx.QueryRow(ctx, `
INSERT INTO swipe_actions (
	swipe_id,
	swiper_id,
	swiper_type,
	swiped_listing_id,
	swiped_requirement_id,
	swiped_user_id,
	action,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING swipe_id, swiper_id, COALESCE(swiper_type, ''), swiped_listing_id, swiped_requirement_id, swiped_user_id, action, created_at
`, uuid.New(), swipe.SwiperID, string(swipe.SwiperType), swipe.ListingID, swipe.RequirementID, swipe.TargetUserID, string(swipe.Action), now.UTC()).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwiperType,
		&rec.ListingID,
		&rec.RequirementID,
		&rec.TargetUserID,
		&rec.Action,
		&rec.CreatedAt,
	)
	if err != nil {
		return model.Swipe{}, fmt.Errorf("insert swipe: %w", err)
	}

	return rec, nil
}

// UpdateAction overwrites the action of an existing swipe. Re-swiping never
// creates a second row for the same (swiper, target content) pair.
func (r *SwipeRepo) UpdateAction(ctx context.Context, tx pgx.Tx, swipeID uuid.UUID, action enums.SwipeAction) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if swipeID == uuid.Nil {
		return fmt.Errorf("invalid swipe id")
	}

	result, err := tx.Exec(ctx, `
UPDATE swipe_actions
SET action = $2
WHERE swipe_id = $1
`, swipeID, string(action))
	if err != nil {
		return fmt.Errorf("update swipe action: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSwipeNotFound
	}

	return nil
}

// FindReciprocalPositive returns a positive (like or super_like) swipe by
// swiperID toward targetUserID, regardless of which listing or requirement it
// was recorded against.
func (r *SwipeRepo) FindReciprocalPositive(ctx context.Context, tx pgx.Tx, swiperID, targetUserID uuid.UUID) (model.Swipe, bool, error) {
	if tx == nil {
		return model.Swipe{}, false, fmt.Errorf("transaction is required")
	}

	var rec model.Swipe
	err := tx.QueryRow(ctx, `
SELECT swipe_id, swiper_id, COALESCE(swiper_type, ''), swiped_listing_id, swiped_requirement_id, swiped_user_id, action, created_at
FROM swipe_actions
WHERE swiper_id = $1
	AND swiped_user_id = $2
	AND action IN ('like', 'super_like')
LIMIT 1
`, swiperID, targetUserID).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwiperType,
		&rec.ListingID,
		&rec.RequirementID,
		&rec.TargetUserID,
		&rec.Action,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Swipe{}, false, nil
		}
		return model.Swipe{}, false, fmt.Errorf("lookup reciprocal swipe: %w", err)
	}

	return rec, true, nil
}

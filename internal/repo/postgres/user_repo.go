package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// GetOrCreateByPhone resolves the stable user id for a phone+role pair,
// inserting the row on first login. The no-op DO UPDATE makes RETURNING
// yield the existing id instead of zero rows on conflict.
func (r *UserRepo) GetOrCreateByPhone(ctx context.Context, phone, role string) (uuid.UUID, error) {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(role) == "" {
		return uuid.Nil, fmt.Errorf("phone and role are required")
	}

	const query = `
		INSERT INTO users (user_id, phone, role)
		VALUES (gen_random_uuid(), $1, $2)
		ON CONFLICT (phone, role) DO UPDATE SET phone = EXCLUDED.phone
		RETURNING user_id`

	var userID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, phone, role).Scan(&userID); err != nil {
		return uuid.Nil, fmt.Errorf("get or create user: %w", err)
	}

	return userID, nil
}

// GetPhone returns the user's login phone, or empty when the user is gone.
func (r *UserRepo) GetPhone(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return "", fmt.Errorf("postgres pool is nil")
	}

	var phone string
	err := r.pool.QueryRow(ctx, `SELECT phone FROM users WHERE user_id = $1`, userID).Scan(&phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get user phone: %w", err)
	}

	return phone, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// TenantProfilePatch enumerates every field a tenant profile update may touch.
// Nil means "leave unchanged"; there is no path for arbitrary fields.
type TenantProfilePatch struct {
	FullName    *string
	Occupation  *string
	CompanyName *string
	AboutMe     *string
	CityPref    *string
	FoodHabit   *string
	HasPets     *bool
	Smokes      *bool
}

type HostProfilePatch struct {
	FullName        *string
	AboutMe         *string
	ResponseTimeHrs *int
}

func (r *ProfileRepo) UpsertTenant(ctx context.Context, userID uuid.UUID, patch TenantProfilePatch, now time.Time) (model.TenantProfile, error) {
	if userID == uuid.Nil {
		return model.TenantProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.TenantProfile{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var p model.TenantProfile
	err := r.pool.QueryRow(ctx, `
INSERT INTO tenant_profiles (
	user_id, full_name, occupation, company_name, about_me, city_pref, food_habit, has_pets, smokes, updated_at
) VALUES (
	$1,
	COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''),
	COALESCE($6, ''), COALESCE($7, ''), COALESCE($8, FALSE), COALESCE($9, FALSE),
	$10
)
ON CONFLICT (user_id) DO UPDATE SET
	full_name = COALESCE($2, tenant_profiles.full_name),
	occupation = COALESCE($3, tenant_profiles.occupation),
	company_name = COALESCE($4, tenant_profiles.company_name),
	about_me = COALESCE($5, tenant_profiles.about_me),
	city_pref = COALESCE($6, tenant_profiles.city_pref),
	food_habit = COALESCE($7, tenant_profiles.food_habit),
	has_pets = COALESCE($8, tenant_profiles.has_pets),
	smokes = COALESCE($9, tenant_profiles.smokes),
	updated_at = $10
RETURNING user_id, full_name, occupation, company_name, about_me, city_pref, food_habit, has_pets, smokes, updated_at
`, userID, patch.FullName, patch.Occupation, patch.CompanyName, patch.AboutMe,
		patch.CityPref, patch.FoodHabit, patch.HasPets, patch.Smokes, now.UTC()).Scan(
		&p.UserID,
		&p.FullName,
		&p.Occupation,
		&p.CompanyName,
		&p.AboutMe,
		&p.CityPref,
		&p.FoodHabit,
		&p.HasPets,
		&p.Smokes,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.TenantProfile{}, fmt.Errorf("upsert tenant profile: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) GetTenant(ctx context.Context, userID uuid.UUID) (model.TenantProfile, error) {
	if userID == uuid.Nil {
		return model.TenantProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.TenantProfile{}, ErrProfileNotFound
	}

	var p model.TenantProfile
	err := r.pool.QueryRow(ctx, `
SELECT user_id, full_name, occupation, company_name, about_me, city_pref, food_habit, has_pets, smokes, updated_at
FROM tenant_profiles
WHERE user_id = $1
LIMIT 1
`, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Occupation,
		&p.CompanyName,
		&p.AboutMe,
		&p.CityPref,
		&p.FoodHabit,
		&p.HasPets,
		&p.Smokes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TenantProfile{}, ErrProfileNotFound
		}
		return model.TenantProfile{}, fmt.Errorf("get tenant profile: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) UpsertHost(ctx context.Context, userID uuid.UUID, patch HostProfilePatch, now time.Time) (model.HostProfile, error) {
	if userID == uuid.Nil {
		return model.HostProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.HostProfile{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var p model.HostProfile
	err := r.pool.QueryRow(ctx, `
INSERT INTO host_profiles (
	user_id, full_name, about_me, response_time_hrs, is_verified, updated_at
) VALUES (
	$1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, 0), FALSE, $5
)
ON CONFLICT (user_id) DO UPDATE SET
	full_name = COALESCE($2, host_profiles.full_name),
	about_me = COALESCE($3, host_profiles.about_me),
	response_time_hrs = COALESCE($4, host_profiles.response_time_hrs),
	updated_at = $5
RETURNING user_id, full_name, about_me, response_time_hrs, is_verified, updated_at
`, userID, patch.FullName, patch.AboutMe, patch.ResponseTimeHrs, now.UTC()).Scan(
		&p.UserID,
		&p.FullName,
		&p.AboutMe,
		&p.ResponseTimeHrs,
		&p.IsVerified,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.HostProfile{}, fmt.Errorf("upsert host profile: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) GetHost(ctx context.Context, userID uuid.UUID) (model.HostProfile, error) {
	if userID == uuid.Nil {
		return model.HostProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.HostProfile{}, ErrProfileNotFound
	}

	var p model.HostProfile
	err := r.pool.QueryRow(ctx, `
SELECT user_id, full_name, about_me, response_time_hrs, is_verified, updated_at
FROM host_profiles
WHERE user_id = $1
LIMIT 1
`, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.AboutMe,
		&p.ResponseTimeHrs,
		&p.IsVerified,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.HostProfile{}, ErrProfileNotFound
		}
		return model.HostProfile{}, fmt.Errorf("get host profile: %w", err)
	}

	return p, nil
}

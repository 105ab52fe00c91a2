package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

const maxTextField = 2000

type ProfileStore interface {
	UpsertTenant(ctx context.Context, userID uuid.UUID, patch pgrepo.TenantProfilePatch, now time.Time) (model.TenantProfile, error)
	GetTenant(ctx context.Context, userID uuid.UUID) (model.TenantProfile, error)
	UpsertHost(ctx context.Context, userID uuid.UUID, patch pgrepo.HostProfilePatch, now time.Time) (model.HostProfile, error)
	GetHost(ctx context.Context, userID uuid.UUID) (model.HostProfile, error)
}

type Service struct {
	store ProfileStore
	now   func() time.Time
}

func NewService(store ProfileStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// UpdateTenant applies a typed patch: only enumerated fields can change, and
// nil fields keep their current value.
func (s *Service) UpdateTenant(ctx context.Context, userID uuid.UUID, patch pgrepo.TenantProfilePatch) (model.TenantProfile, error) {
	if userID == uuid.Nil {
		return model.TenantProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.TenantProfile{}, fmt.Errorf("profile store is nil")
	}

	for _, field := range []*string{patch.FullName, patch.Occupation, patch.CompanyName, patch.AboutMe, patch.CityPref, patch.FoodHabit} {
		if field != nil && len(*field) > maxTextField {
			return model.TenantProfile{}, ErrValidation
		}
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return model.TenantProfile{}, ErrValidation
	}

	return s.store.UpsertTenant(ctx, userID, patch, s.now().UTC())
}

func (s *Service) GetTenant(ctx context.Context, userID uuid.UUID) (model.TenantProfile, error) {
	if userID == uuid.Nil {
		return model.TenantProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.TenantProfile{}, fmt.Errorf("profile store is nil")
	}

	p, err := s.store.GetTenant(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.TenantProfile{}, ErrNotFound
		}
		return model.TenantProfile{}, err
	}
	return p, nil
}

func (s *Service) UpdateHost(ctx context.Context, userID uuid.UUID, patch pgrepo.HostProfilePatch) (model.HostProfile, error) {
	if userID == uuid.Nil {
		return model.HostProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.HostProfile{}, fmt.Errorf("profile store is nil")
	}

	for _, field := range []*string{patch.FullName, patch.AboutMe} {
		if field != nil && len(*field) > maxTextField {
			return model.HostProfile{}, ErrValidation
		}
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return model.HostProfile{}, ErrValidation
	}
	if patch.ResponseTimeHrs != nil && (*patch.ResponseTimeHrs < 0 || *patch.ResponseTimeHrs > 24*7) {
		return model.HostProfile{}, ErrValidation
	}

	return s.store.UpsertHost(ctx, userID, patch, s.now().UTC())
}

func (s *Service) GetHost(ctx context.Context, userID uuid.UUID) (model.HostProfile, error) {
	if userID == uuid.Nil {
		return model.HostProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.HostProfile{}, fmt.Errorf("profile store is nil")
	}

	p, err := s.store.GetHost(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.HostProfile{}, ErrNotFound
		}
		return model.HostProfile{}, err
	}
	return p, nil
}

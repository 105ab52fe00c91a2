package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

type profileStoreStub struct {
	tenants map[uuid.UUID]*model.TenantProfile
	hosts   map[uuid.UUID]*model.HostProfile
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{
		tenants: map[uuid.UUID]*model.TenantProfile{},
		hosts:   map[uuid.UUID]*model.HostProfile{},
	}
}

func (s *profileStoreStub) UpsertTenant(_ context.Context, userID uuid.UUID, patch pgrepo.TenantProfilePatch, now time.Time) (model.TenantProfile, error) {
	p, ok := s.tenants[userID]
	if !ok {
		p = &model.TenantProfile{UserID: userID}
		s.tenants[userID] = p
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Occupation != nil {
		p.Occupation = *patch.Occupation
	}
	if patch.AboutMe != nil {
		p.AboutMe = *patch.AboutMe
	}
	if patch.HasPets != nil {
		p.HasPets = *patch.HasPets
	}
	p.UpdatedAt = now
	return *p, nil
}

func (s *profileStoreStub) GetTenant(_ context.Context, userID uuid.UUID) (model.TenantProfile, error) {
	p, ok := s.tenants[userID]
	if !ok {
		return model.TenantProfile{}, pgrepo.ErrProfileNotFound
	}
	return *p, nil
}

func (s *profileStoreStub) UpsertHost(_ context.Context, userID uuid.UUID, patch pgrepo.HostProfilePatch, now time.Time) (model.HostProfile, error) {
	p, ok := s.hosts[userID]
	if !ok {
		p = &model.HostProfile{UserID: userID}
		s.hosts[userID] = p
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.AboutMe != nil {
		p.AboutMe = *patch.AboutMe
	}
	if patch.ResponseTimeHrs != nil {
		p.ResponseTimeHrs = *patch.ResponseTimeHrs
	}
	p.UpdatedAt = now
	return *p, nil
}

func (s *profileStoreStub) GetHost(_ context.Context, userID uuid.UUID) (model.HostProfile, error) {
	p, ok := s.hosts[userID]
	if !ok {
		return model.HostProfile{}, pgrepo.ErrProfileNotFound
	}
	return *p, nil
}

func strPtr(v string) *string { return &v }

func TestTenantPatchLeavesUnsetFieldsAlone(t *testing.T) {
	svc := NewService(newProfileStoreStub())
	ctx := context.Background()
	user := uuid.New()

	hasPets := true
	if _, err := svc.UpdateTenant(ctx, user, pgrepo.TenantProfilePatch{
		FullName:   strPtr("Asha"),
		Occupation: strPtr("engineer"),
		HasPets:    &hasPets,
	}); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	updated, err := svc.UpdateTenant(ctx, user, pgrepo.TenantProfilePatch{
		AboutMe: strPtr("quiet, tidy"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.FullName != "Asha" || updated.Occupation != "engineer" || !updated.HasPets {
		t.Fatalf("patch overwrote unset fields: %+v", updated)
	}
	if updated.AboutMe != "quiet, tidy" {
		t.Fatalf("patched field not applied: %+v", updated)
	}
}

func TestPatchValidation(t *testing.T) {
	svc := NewService(newProfileStoreStub())
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.UpdateTenant(ctx, user, pgrepo.TenantProfilePatch{FullName: strPtr("   ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: expected ErrValidation, got %v", err)
	}

	long := strings.Repeat("x", maxTextField+1)
	if _, err := svc.UpdateTenant(ctx, user, pgrepo.TenantProfilePatch{AboutMe: &long}); !errors.Is(err, ErrValidation) {
		t.Fatalf("oversize field: expected ErrValidation, got %v", err)
	}

	bad := -1
	if _, err := svc.UpdateHost(ctx, user, pgrepo.HostProfilePatch{ResponseTimeHrs: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative response time: expected ErrValidation, got %v", err)
	}
}

func TestGetMissingProfile(t *testing.T) {
	svc := NewService(newProfileStoreStub())
	ctx := context.Background()

	if _, err := svc.GetTenant(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing tenant: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetHost(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing host: expected ErrNotFound, got %v", err)
	}
}

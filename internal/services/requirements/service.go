package requirements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("requirement not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type RequirementStore interface {
	Create(ctx context.Context, req model.Requirement, now time.Time) (model.Requirement, error)
	GetByID(ctx context.Context, requirementID uuid.UUID) (model.Requirement, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.Requirement, int, error)
	UpdateStatus(ctx context.Context, requirementID, tenantID uuid.UUID, status enums.RequirementStatus, now time.Time) error
}

type CreateInput struct {
	TenantID   uuid.UUID
	Title      string
	BudgetMin  float64
	BudgetMax  float64
	Localities []string
	City       string
	Occupancy  string
	MoveInDate *time.Time
}

type ListResult struct {
	Items []model.Requirement
	Total int
	Page  int
	Limit int
}

type Service struct {
	store RequirementStore
	now   func() time.Time
}

func NewService(store RequirementStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (model.Requirement, error) {
	if input.TenantID == uuid.Nil {
		return model.Requirement{}, ErrValidation
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.City) == "" {
		return model.Requirement{}, ErrValidation
	}
	if input.BudgetMin < 0 || input.BudgetMax <= 0 || input.BudgetMin > input.BudgetMax {
		return model.Requirement{}, ErrValidation
	}
	if s.store == nil {
		return model.Requirement{}, fmt.Errorf("requirement store is nil")
	}

	req := model.Requirement{
		TenantID:   input.TenantID,
		Title:      strings.TrimSpace(input.Title),
		BudgetMin:  input.BudgetMin,
		BudgetMax:  input.BudgetMax,
		Localities: input.Localities,
		City:       strings.TrimSpace(input.City),
		Occupancy:  input.Occupancy,
		MoveInDate: input.MoveInDate,
		Status:     enums.RequirementStatusActive,
	}

	created, err := s.store.Create(ctx, req, s.now().UTC())
	if err != nil {
		return model.Requirement{}, err
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, requirementID uuid.UUID) (model.Requirement, error) {
	if requirementID == uuid.Nil {
		return model.Requirement{}, ErrValidation
	}
	if s.store == nil {
		return model.Requirement{}, fmt.Errorf("requirement store is nil")
	}

	req, err := s.store.GetByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequirementNotFound) {
			return model.Requirement{}, ErrNotFound
		}
		return model.Requirement{}, err
	}

	return req, nil
}

func (s *Service) ListMine(ctx context.Context, tenantID uuid.UUID, page, limit int) (ListResult, error) {
	if tenantID == uuid.Nil {
		return ListResult{}, ErrValidation
	}
	if s.store == nil {
		return ListResult{}, fmt.Errorf("requirement store is nil")
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.store.ListByTenant(ctx, tenantID, limit, (page-1)*limit)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, requirementID, tenantID uuid.UUID, status enums.RequirementStatus) error {
	if requirementID == uuid.Nil || tenantID == uuid.Nil {
		return ErrValidation
	}
	switch status {
	case enums.RequirementStatusActive, enums.RequirementStatusInactive, enums.RequirementStatusFulfilled:
	default:
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("requirement store is nil")
	}

	if err := s.store.UpdateStatus(ctx, requirementID, tenantID, status, s.now().UTC()); err != nil {
		if errors.Is(err, pgrepo.ErrRequirementNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

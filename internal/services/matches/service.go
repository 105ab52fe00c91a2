package matches

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
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchClosed       = errors.New("match is no longer active")
	ErrVisitNotScheduled = errors.New("no visit is scheduled")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type MatchStore interface {
	GetForUser(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error)
	GetForUserTx(ctx context.Context, tx pgx.Tx, matchID, userID uuid.UUID) (model.Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status enums.MatchStatus, limit, offset int) ([]model.Match, int, error)
	ScheduleVisit(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, visitDate time.Time) error
	UpdateVisitStatus(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, status enums.VisitStatus) error
	CloseDeal(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, amount float64, now time.Time) error
	Unmatch(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, now time.Time) error
}

// ContactStore resolves a party's phone for matches with contact sharing.
type ContactStore interface {
	GetPhone(ctx context.Context, userID uuid.UUID) (string, error)
}

type ListResult struct {
	Items []model.Match
	Total int
	Page  int
	Limit int
}

type Service struct {
	runTx      func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
	matchStore MatchStore
	contacts   ContactStore
	now        func() time.Time
}

type Dependencies struct {
	Pool       *pgxpool.Pool
	MatchStore MatchStore
	Contacts   ContactStore

	// RunTx overrides the pool-backed transaction runner. Tests use it to
	// drive the service without a live database.
	RunTx func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

func NewService(deps Dependencies) *Service {
	runTx := deps.RunTx
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, deps.Pool, fn)
		}
	}

	return &Service{
		runTx:      runTx,
		matchStore: deps.MatchStore,
		contacts:   deps.Contacts,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, status enums.MatchStatus, page, limit int) (ListResult, error) {
	if userID == uuid.Nil {
		return ListResult{}, ErrValidation
	}
	if status != "" && status != enums.MatchStatusActive && status != enums.MatchStatusUnmatched && status != enums.MatchStatusDealClosed {
		return ListResult{}, ErrValidation
	}
	if s.matchStore == nil {
		return ListResult{}, fmt.Errorf("match store is nil")
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

	items, total, err := s.matchStore.ListForUser(ctx, userID, status, limit, (page-1)*limit)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get loads the match detail for one of its parties. Party phones are
// attached only while contact_shared is set; otherwise the detail carries
// bare user ids.
func (s *Service) Get(ctx context.Context, userID, matchID uuid.UUID) (model.MatchDetail, error) {
	if userID == uuid.Nil || matchID == uuid.Nil {
		return model.MatchDetail{}, ErrValidation
	}
	if s.matchStore == nil {
		return model.MatchDetail{}, fmt.Errorf("match store is nil")
	}

	match, err := s.matchStore.GetForUser(ctx, matchID, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.MatchDetail{}, ErrMatchNotFound
		}
		return model.MatchDetail{}, err
	}

	detail := model.MatchDetail{
		Match:  match,
		Tenant: &model.MatchParty{UserID: match.TenantID},
		Host:   &model.MatchParty{UserID: match.HostID},
	}

	if match.ContactShared && s.contacts != nil {
		tenantPhone, err := s.contacts.GetPhone(ctx, match.TenantID)
		if err != nil {
			return model.MatchDetail{}, fmt.Errorf("resolve tenant contact: %w", err)
		}
		hostPhone, err := s.contacts.GetPhone(ctx, match.HostID)
		if err != nil {
			return model.MatchDetail{}, fmt.Errorf("resolve host contact: %w", err)
		}
		if tenantPhone != "" {
			detail.Tenant.Phone = &tenantPhone
		}
		if hostPhone != "" {
			detail.Host.Phone = &hostPhone
		}
	}

	return detail, nil
}

// ScheduleVisit sets the visit flags on an active match. Once a match has
// reached a terminal status the operation is rejected.
func (s *Service) ScheduleVisit(ctx context.Context, userID, matchID uuid.UUID, visitDate time.Time) (model.Match, error) {
	if userID == uuid.Nil || matchID == uuid.Nil || visitDate.IsZero() {
		return model.Match{}, ErrValidation
	}

	return s.mutateActive(ctx, userID, matchID, func(txCtx context.Context, tx pgx.Tx) error {
		return s.matchStore.ScheduleVisit(txCtx, tx, matchID, visitDate)
	})
}

// UpdateVisitStatus moves a scheduled visit to completed, cancelled or
// rescheduled. It requires an active match that already has a visit.
func (s *Service) UpdateVisitStatus(ctx context.Context, userID, matchID uuid.UUID, status enums.VisitStatus) (model.Match, error) {
	if userID == uuid.Nil || matchID == uuid.Nil {
		return model.Match{}, ErrValidation
	}
	// 'scheduled' is only ever written by ScheduleVisit itself.
	if !status.Valid() || status == enums.VisitStatusScheduled {
		return model.Match{}, ErrValidation
	}
	if s.runTx == nil || s.matchStore == nil {
		return model.Match{}, fmt.Errorf("match dependencies are not configured")
	}

	var updated model.Match
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		match, err := s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.Status != enums.MatchStatusActive {
			return ErrMatchClosed
		}
		if !match.VisitScheduled {
			return ErrVisitNotScheduled
		}

		if err := s.matchStore.UpdateVisitStatus(txCtx, tx, matchID, status); err != nil {
			return err
		}

		updated, err = s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		return err
	}); err != nil {
		return model.Match{}, err
	}

	return updated, nil
}

func (s *Service) CloseDeal(ctx context.Context, userID, matchID uuid.UUID, amount float64) (model.Match, error) {
	if userID == uuid.Nil || matchID == uuid.Nil || amount <= 0 {
		return model.Match{}, ErrValidation
	}

	now := s.now().UTC()
	return s.mutateActive(ctx, userID, matchID, func(txCtx context.Context, tx pgx.Tx) error {
		return s.matchStore.CloseDeal(txCtx, tx, matchID, amount, now)
	})
}

// Unmatch is idempotent for an already unmatched pair but refuses to touch a
// closed deal.
func (s *Service) Unmatch(ctx context.Context, userID, matchID uuid.UUID) (model.Match, error) {
	if userID == uuid.Nil || matchID == uuid.Nil {
		return model.Match{}, ErrValidation
	}
	if s.runTx == nil || s.matchStore == nil {
		return model.Match{}, fmt.Errorf("match dependencies are not configured")
	}

	now := s.now().UTC()
	var updated model.Match

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		match, err := s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		switch match.Status {
		case enums.MatchStatusUnmatched:
			updated = match
			return nil
		case enums.MatchStatusDealClosed:
			return ErrMatchClosed
		}

		if err := s.matchStore.Unmatch(txCtx, tx, matchID, now); err != nil {
			return err
		}

		updated, err = s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		return err
	}); err != nil {
		return model.Match{}, err
	}

	return updated, nil
}

func (s *Service) mutateActive(ctx context.Context, userID, matchID uuid.UUID, mutate func(context.Context, pgx.Tx) error) (model.Match, error) {
	if s.runTx == nil || s.matchStore == nil {
		return model.Match{}, fmt.Errorf("match dependencies are not configured")
	}

	var updated model.Match
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		match, err := s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.Status != enums.MatchStatusActive {
			return ErrMatchClosed
		}

		if err := mutate(txCtx, tx); err != nil {
			return err
		}

		updated, err = s.matchStore.GetForUserTx(txCtx, tx, matchID, userID)
		return err
	}); err != nil {
		return model.Match{}, err
	}

	return updated, nil
}

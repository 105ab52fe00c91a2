package swipes

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
	ErrInvalidTarget     = errors.New("exactly one swipe target is required")
	ErrUnsupportedAction = errors.New("unsupported action")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type SwipeStore interface {
	AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB uuid.UUID) error
	GetForTarget(ctx context.Context, tx pgx.Tx, swiperID uuid.UUID, listingID, requirementID *uuid.UUID) (model.Swipe, error)
	Insert(ctx context.Context, tx pgx.Tx, swipe model.Swipe, now time.Time) (model.Swipe, error)
	UpdateAction(ctx context.Context, tx pgx.Tx, swipeID uuid.UUID, action enums.SwipeAction) error
	FindReciprocalPositive(ctx context.Context, tx pgx.Tx, swiperID, targetUserID uuid.UUID) (model.Swipe, bool, error)
}

type MatchStore interface {
	GetOrCreate(ctx context.Context, tx pgx.Tx, key pgrepo.MatchKey, now time.Time) (model.Match, bool, error)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID uuid.UUID) (int64, bool, error)
}

type SwipeInput struct {
	SwiperID      uuid.UUID
	SwiperType    enums.SwiperType
	TargetUserID  uuid.UUID
	ListingID     *uuid.UUID
	RequirementID *uuid.UUID
	Action        enums.SwipeAction
}

type SwipeResult struct {
	Swipe   model.Swipe
	IsNew   bool
	IsMatch bool
	Match   *model.Match
}

type Service struct {
	runTx       func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
	swipeStore  SwipeStore
	matchStore  MatchStore
	rateLimiter RateLimiter
	now         func() time.Time
}

type Dependencies struct {
	Pool        *pgxpool.Pool
	SwipeStore  SwipeStore
	MatchStore  MatchStore
	RateLimiter RateLimiter

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
		runTx:       runTx,
		swipeStore:  deps.SwipeStore,
		matchStore:  deps.MatchStore,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
	}
}

// Swipe records or overwrites the actor's swipe toward one content target and
// reconciles mutual interest in the same transaction. Recording and
// reconciliation either both commit or both roll back.
func (s *Service) Swipe(ctx context.Context, input SwipeInput) (SwipeResult, error) {
	if err := validateInput(input); err != nil {
		return SwipeResult{}, err
	}
	if s.runTx == nil || s.swipeStore == nil || s.matchStore == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, input.SwiperID)
		if err == nil && !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
		// A limiter backend outage must not take down swiping; the limit
		// simply stops being enforced until Redis is back.
	}

	now := s.now().UTC()
	var result SwipeResult

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		// Serialize per unordered user pair so two concurrent mutual likes
		// cannot both miss each other's reciprocal row.
		if err := s.swipeStore.AcquirePairLock(txCtx, tx, input.SwiperID, input.TargetUserID); err != nil {
			return err
		}

		existing, err := s.swipeStore.GetForTarget(txCtx, tx, input.SwiperID, input.ListingID, input.RequirementID)
		switch {
		case err == nil:
			result.Swipe = existing
			result.IsNew = false
			if existing.Action != input.Action {
				if err := s.swipeStore.UpdateAction(txCtx, tx, existing.ID, input.Action); err != nil {
					return err
				}
				result.Swipe.Action = input.Action
			}
		case errors.Is(err, pgrepo.ErrSwipeNotFound):
			created, err := s.swipeStore.Insert(txCtx, tx, model.Swipe{
				SwiperID:      input.SwiperID,
				SwiperType:    input.SwiperType,
				ListingID:     input.ListingID,
				RequirementID: input.RequirementID,
				TargetUserID:  input.TargetUserID,
				Action:        input.Action,
			}, now)
			if err != nil {
				return err
			}
			result.Swipe = created
			result.IsNew = true
		default:
			return err
		}

		if !input.Action.Positive() {
			return nil
		}

		return s.reconcile(txCtx, tx, input, now, &result)
	}); err != nil {
		return SwipeResult{}, err
	}

	return result, nil
}

// reconcile runs for every positive swipe, not only transitions into the
// positive class. GetOrCreate makes it idempotent, so duplicate requests for
// an already matched pair all report the same match.
func (s *Service) reconcile(ctx context.Context, tx pgx.Tx, input SwipeInput, now time.Time, result *SwipeResult) error {
	_, found, err := s.swipeStore.FindReciprocalPositive(ctx, tx, input.TargetUserID, input.SwiperID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	key := pgrepo.MatchKey{
		TenantID:      input.SwiperID,
		HostID:        input.TargetUserID,
		ListingID:     input.ListingID,
		RequirementID: input.RequirementID,
	}
	if input.SwiperType == enums.SwiperTypeHost {
		key.TenantID = input.TargetUserID
		key.HostID = input.SwiperID
	}

	match, _, err := s.matchStore.GetOrCreate(ctx, tx, key, now)
	if err != nil {
		return err
	}

	result.IsMatch = true
	result.Match = &match
	return nil
}

func validateInput(input SwipeInput) error {
	if input.SwiperID == uuid.Nil || input.TargetUserID == uuid.Nil {
		return ErrValidation
	}
	if input.SwiperID == input.TargetUserID {
		return ErrValidation
	}
	if !input.Action.Valid() {
		return ErrUnsupportedAction
	}
	if (input.ListingID == nil) == (input.RequirementID == nil) {
		return ErrInvalidTarget
	}

	// Tenants swipe on listings, hosts on tenant requirements.
	switch input.SwiperType {
	case enums.SwiperTypeTenant:
		if input.ListingID == nil {
			return ErrInvalidTarget
		}
	case enums.SwiperTypeHost:
		if input.RequirementID == nil {
			return ErrInvalidTarget
		}
	default:
		return ErrValidation
	}

	return nil
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
	redrepo "github.com/becomecodx/HOMIGO/internal/repo/redis"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	ratesvc "github.com/becomecodx/HOMIGO/internal/services/rate"
	swipesvc "github.com/becomecodx/HOMIGO/internal/services/swipes"
)

type swipeStoreStub struct{}

func (s swipeStoreStub) AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB uuid.UUID) error {
	return nil
}

func (s swipeStoreStub) GetForTarget(ctx context.Context, tx pgx.Tx, swiperID uuid.UUID, listingID, requirementID *uuid.UUID) (model.Swipe, error) {
	return model.Swipe{}, pgrepo.ErrSwipeNotFound
}

func (s swipeStoreStub) Insert(ctx context.Context, tx pgx.Tx, swipe model.Swipe, now time.Time) (model.Swipe, error) {
	swipe.ID = uuid.New()
	swipe.CreatedAt = now
	return swipe, nil
}

func (s swipeStoreStub) UpdateAction(ctx context.Context, tx pgx.Tx, swipeID uuid.UUID, action enums.SwipeAction) error {
	return nil
}

func (s swipeStoreStub) FindReciprocalPositive(ctx context.Context, tx pgx.Tx, swiperID, targetUserID uuid.UUID) (model.Swipe, bool, error) {
	return model.Swipe{}, false, nil
}

type matchStoreStub struct{}

func (m matchStoreStub) GetOrCreate(ctx context.Context, tx pgx.Tx, key pgrepo.MatchKey, now time.Time) (model.Match, bool, error) {
	return model.Match{}, false, nil
}

func newSwipeHandlerForTest(t *testing.T, perSecond int) *SwipeHandler {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	limiter := ratesvc.NewLimiter(redrepo.NewRateRepo(redisClient), perSecond, perSecond*10)

	svc := swipesvc.NewService(swipesvc.Dependencies{
		SwipeStore:  swipeStoreStub{},
		MatchStore:  matchStoreStub{},
		RateLimiter: limiter,
		RunTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		},
	})

	return NewSwipeHandler(svc)
}

func performSwipeRequest(t *testing.T, h *SwipeHandler, authed bool, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/swipes", bytes.NewReader(raw))
	if authed {
		req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
			UserID: uuid.MustParse("8a5ee4b4-7f0e-4b1f-8f50-1d9a4c1f9a01"),
			SID:    "sid-tenant",
			Role:   string(enums.SwiperTypeTenant),
		}))
	}
	rec := httptest.NewRecorder()
	h.Swipe(rec, req)
	return rec
}

func TestSwipeHandlerRequiresAuth(t *testing.T) {
	h := newSwipeHandlerForTest(t, 100)

	resp := performSwipeRequest(t, h, false, map[string]any{
		"target_user_id": uuid.New().String(),
		"listing_id":     uuid.New().String(),
		"action":         "like",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusUnauthorized)
	}
}

func TestSwipeHandlerRejectsAmbiguousTarget(t *testing.T) {
	h := newSwipeHandlerForTest(t, 100)

	resp := performSwipeRequest(t, h, true, map[string]any{
		"target_user_id": uuid.New().String(),
		"listing_id":     uuid.New().String(),
		"requirement_id": uuid.New().String(),
		"action":         "like",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "INVALID_TARGET" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "INVALID_TARGET")
	}
}

func TestSwipeHandlerReturnsTooFastOnBurst(t *testing.T) {
	h := newSwipeHandlerForTest(t, 2)

	for i := 0; i < 2; i++ {
		resp := performSwipeRequest(t, h, true, map[string]any{
			"target_user_id": uuid.New().String(),
			"listing_id":     uuid.New().String(),
			"action":         "like",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("swipe %d: unexpected status %d, body %s", i, resp.Code, resp.Body.String())
		}
	}

	resp := performSwipeRequest(t, h, true, map[string]any{
		"target_user_id": uuid.New().String(),
		"listing_id":     uuid.New().String(),
		"action":         "like",
	})
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status on third swipe: got %d want %d", resp.Code, http.StatusTooManyRequests)
	}

	var payload struct {
		Code          string `json:"code"`
		RetryAfterSec int64  `json:"retry_after_sec"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "TOO_FAST" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "TOO_FAST")
	}
	if payload.RetryAfterSec <= 0 {
		t.Fatalf("expected positive retry_after_sec, got %d", payload.RetryAfterSec)
	}
}

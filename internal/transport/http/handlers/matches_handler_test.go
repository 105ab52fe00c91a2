package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	matchessvc "github.com/becomecodx/HOMIGO/internal/services/matches"
)

type matchLookupStub struct {
	matches map[uuid.UUID]*model.Match
}

func (m *matchLookupStub) get(matchID, userID uuid.UUID) (model.Match, error) {
	match, ok := m.matches[matchID]
	if !ok || (match.TenantID != userID && match.HostID != userID) {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return *match, nil
}

func (m *matchLookupStub) GetForUser(ctx context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	return m.get(matchID, userID)
}

func (m *matchLookupStub) GetForUserTx(ctx context.Context, tx pgx.Tx, matchID, userID uuid.UUID) (model.Match, error) {
	return m.get(matchID, userID)
}

func (m *matchLookupStub) ListForUser(ctx context.Context, userID uuid.UUID, status enums.MatchStatus, limit, offset int) ([]model.Match, int, error) {
	var items []model.Match
	for _, match := range m.matches {
		if match.TenantID != userID && match.HostID != userID {
			continue
		}
		if status != "" && match.Status != status {
			continue
		}
		items = append(items, *match)
	}
	return items, len(items), nil
}

func (m *matchLookupStub) ScheduleVisit(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, visitDate time.Time) error {
	match := m.matches[matchID]
	status := string(enums.VisitStatusScheduled)
	if match.VisitScheduled {
		status = string(enums.VisitStatusRescheduled)
	}
	match.VisitScheduled = true
	match.VisitDate = &visitDate
	match.VisitStatus = &status
	return nil
}

func (m *matchLookupStub) UpdateVisitStatus(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, status enums.VisitStatus) error {
	match := m.matches[matchID]
	value := string(status)
	match.VisitStatus = &value
	return nil
}

func (m *matchLookupStub) CloseDeal(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, amount float64, now time.Time) error {
	match := m.matches[matchID]
	match.Status = enums.MatchStatusDealClosed
	match.DealClosed = true
	match.DealAmount = &amount
	match.DealClosedAt = &now
	return nil
}

func (m *matchLookupStub) Unmatch(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, now time.Time) error {
	match := m.matches[matchID]
	match.Status = enums.MatchStatusUnmatched
	match.UnmatchedAt = &now
	return nil
}

type phoneBookStub map[uuid.UUID]string

func (p phoneBookStub) GetPhone(ctx context.Context, userID uuid.UUID) (string, error) {
	return p[userID], nil
}

func newMatchesHandlerForTest(store matchessvc.MatchStore, contacts matchessvc.ContactStore) *MatchesHandler {
	svc := matchessvc.NewService(matchessvc.Dependencies{
		MatchStore: store,
		Contacts:   contacts,
		RunTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		},
	})
	return NewMatchesHandler(svc)
}

func matchRequest(t *testing.T, method, target string, userID uuid.UUID, matchID string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		UserID: userID,
		SID:    "sid-test",
		Role:   string(enums.SwiperTypeTenant),
	}))

	if matchID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("matchID", matchID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}
	return req
}

func TestMatchGetIsParticipantScoped(t *testing.T) {
	tenant := uuid.New()
	host := uuid.New()
	stranger := uuid.New()
	matchID := uuid.New()

	store := &matchLookupStub{matches: map[uuid.UUID]*model.Match{
		matchID: {ID: matchID, TenantID: tenant, HostID: host, Status: enums.MatchStatusActive},
	}}
	h := newMatchesHandlerForTest(store, nil)

	rec := httptest.NewRecorder()
	h.Get(rec, matchRequest(t, http.MethodGet, "/matches/"+matchID.String(), tenant, matchID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("participant lookup: got %d want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, matchRequest(t, http.MethodGet, "/matches/"+matchID.String(), stranger, matchID.String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("stranger lookup: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestMatchGetGatesContactOnSharing(t *testing.T) {
	tenant := uuid.New()
	host := uuid.New()
	matchID := uuid.New()
	contacts := phoneBookStub{tenant: "+79990001122", host: "+79990003344"}

	match := &model.Match{ID: matchID, TenantID: tenant, HostID: host, Status: enums.MatchStatusActive}
	store := &matchLookupStub{matches: map[uuid.UUID]*model.Match{matchID: match}}
	h := newMatchesHandlerForTest(store, contacts)

	type party struct {
		UserID uuid.UUID `json:"user_id"`
		Phone  *string   `json:"phone"`
	}
	type detail struct {
		ContactShared bool   `json:"contact_shared"`
		Tenant        *party `json:"tenant"`
		Host          *party `json:"host"`
	}

	rec := httptest.NewRecorder()
	h.Get(rec, matchRequest(t, http.MethodGet, "/matches/"+matchID.String(), tenant, matchID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var hidden detail
	if err := json.Unmarshal(rec.Body.Bytes(), &hidden); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if hidden.Tenant == nil || hidden.Host == nil {
		t.Fatalf("parties missing from detail: %s", rec.Body.String())
	}
	if hidden.Tenant.Phone != nil || hidden.Host.Phone != nil {
		t.Fatalf("phones must be absent without contact sharing: %s", rec.Body.String())
	}

	match.ContactShared = true
	rec = httptest.NewRecorder()
	h.Get(rec, matchRequest(t, http.MethodGet, "/matches/"+matchID.String(), host, matchID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var shared detail
	if err := json.Unmarshal(rec.Body.Bytes(), &shared); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !shared.ContactShared {
		t.Fatalf("contact_shared flag lost: %s", rec.Body.String())
	}
	if shared.Tenant.Phone == nil || *shared.Tenant.Phone != "+79990001122" {
		t.Fatalf("tenant phone missing with contact sharing: %s", rec.Body.String())
	}
	if shared.Host.Phone == nil || *shared.Host.Phone != "+79990003344" {
		t.Fatalf("host phone missing with contact sharing: %s", rec.Body.String())
	}
}

func TestMatchVisitStatusRequiresScheduledVisit(t *testing.T) {
	tenant := uuid.New()
	matchID := uuid.New()

	store := &matchLookupStub{matches: map[uuid.UUID]*model.Match{
		matchID: {ID: matchID, TenantID: tenant, HostID: uuid.New(), Status: enums.MatchStatusActive},
	}}
	h := newMatchesHandlerForTest(store, nil)

	rec := httptest.NewRecorder()
	h.UpdateVisitStatus(rec, matchRequest(t, http.MethodPatch, "/matches/"+matchID.String()+"/visit-status", tenant, matchID.String(), map[string]any{
		"status": "completed",
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusConflict, rec.Body.String())
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "VISIT_NOT_SCHEDULED" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "VISIT_NOT_SCHEDULED")
	}

	store.matches[matchID].VisitScheduled = true
	rec = httptest.NewRecorder()
	h.UpdateVisitStatus(rec, matchRequest(t, http.MethodPatch, "/matches/"+matchID.String()+"/visit-status", tenant, matchID.String(), map[string]any{
		"status": "cancelled",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var updated model.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.VisitStatus == nil || *updated.VisitStatus != string(enums.VisitStatusCancelled) {
		t.Fatalf("visit status not updated: %+v", updated.VisitStatus)
	}
}

func TestMatchListRejectsUnknownStatus(t *testing.T) {
	h := newMatchesHandlerForTest(&matchLookupStub{matches: map[uuid.UUID]*model.Match{}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, matchRequest(t, http.MethodGet, "/matches?status=bogus", uuid.New(), "", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMatchLifecycleRejectedOnClosedMatch(t *testing.T) {
	tenant := uuid.New()
	matchID := uuid.New()

	store := &matchLookupStub{matches: map[uuid.UUID]*model.Match{
		matchID: {ID: matchID, TenantID: tenant, HostID: uuid.New(), Status: enums.MatchStatusDealClosed, DealClosed: true},
	}}
	h := newMatchesHandlerForTest(store, nil)

	rec := httptest.NewRecorder()
	h.ScheduleVisit(rec, matchRequest(t, http.MethodPost, "/matches/"+matchID.String()+"/visit", tenant, matchID.String(), map[string]any{
		"visit_date": time.Now().Add(48 * time.Hour).UTC(),
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusConflict, rec.Body.String())
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "MATCH_CLOSED" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "MATCH_CLOSED")
	}
}

func TestMatchUnmatchReturnsUpdatedMatch(t *testing.T) {
	tenant := uuid.New()
	matchID := uuid.New()

	store := &matchLookupStub{matches: map[uuid.UUID]*model.Match{
		matchID: {ID: matchID, TenantID: tenant, HostID: uuid.New(), Status: enums.MatchStatusActive},
	}}
	h := newMatchesHandlerForTest(store, nil)

	rec := httptest.NewRecorder()
	h.Unmatch(rec, matchRequest(t, http.MethodPost, "/matches/"+matchID.String()+"/unmatch", tenant, matchID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var payload model.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != enums.MatchStatusUnmatched {
		t.Fatalf("unexpected status: got %q want %q", payload.Status, enums.MatchStatusUnmatched)
	}
}

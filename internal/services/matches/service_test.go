package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

type matchStoreStub struct {
	matches map[uuid.UUID]*model.Match
}

func newMatchStoreStub(matches ...*model.Match) *matchStoreStub {
	s := &matchStoreStub{matches: map[uuid.UUID]*model.Match{}}
	for _, m := range matches {
		s.matches[m.ID] = m
	}
	return s
}

func (s *matchStoreStub) getForUser(matchID, userID uuid.UUID) (*model.Match, error) {
	m, ok := s.matches[matchID]
	if !ok || (m.TenantID != userID && m.HostID != userID) {
		return nil, pgrepo.ErrMatchNotFound
	}
	return m, nil
}

func (s *matchStoreStub) GetForUser(_ context.Context, matchID, userID uuid.UUID) (model.Match, error) {
	m, err := s.getForUser(matchID, userID)
	if err != nil {
		return model.Match{}, err
	}
	return *m, nil
}

func (s *matchStoreStub) GetForUserTx(_ context.Context, _ pgx.Tx, matchID, userID uuid.UUID) (model.Match, error) {
	m, err := s.getForUser(matchID, userID)
	if err != nil {
		return model.Match{}, err
	}
	return *m, nil
}

func (s *matchStoreStub) ListForUser(_ context.Context, userID uuid.UUID, status enums.MatchStatus, limit, offset int) ([]model.Match, int, error) {
	var items []model.Match
	for _, m := range s.matches {
		if m.TenantID != userID && m.HostID != userID {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		items = append(items, *m)
	}
	total := len(items)
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (s *matchStoreStub) ScheduleVisit(_ context.Context, _ pgx.Tx, matchID uuid.UUID, visitDate time.Time) error {
	m, ok := s.matches[matchID]
	if !ok || m.Status != enums.MatchStatusActive {
		return pgrepo.ErrMatchNotFound
	}
	status := string(enums.VisitStatusScheduled)
	if m.VisitScheduled {
		status = string(enums.VisitStatusRescheduled)
	}
	m.VisitScheduled = true
	m.VisitDate = &visitDate
	m.VisitStatus = &status
	return nil
}

func (s *matchStoreStub) UpdateVisitStatus(_ context.Context, _ pgx.Tx, matchID uuid.UUID, status enums.VisitStatus) error {
	m, ok := s.matches[matchID]
	if !ok || m.Status != enums.MatchStatusActive || !m.VisitScheduled {
		return pgrepo.ErrMatchNotFound
	}
	value := string(status)
	m.VisitStatus = &value
	return nil
}

func (s *matchStoreStub) CloseDeal(_ context.Context, _ pgx.Tx, matchID uuid.UUID, amount float64, now time.Time) error {
	m, ok := s.matches[matchID]
	if !ok || m.Status != enums.MatchStatusActive {
		return pgrepo.ErrMatchNotFound
	}
	m.DealClosed = true
	m.DealClosedAt = &now
	m.DealAmount = &amount
	m.Status = enums.MatchStatusDealClosed
	return nil
}

func (s *matchStoreStub) Unmatch(_ context.Context, _ pgx.Tx, matchID uuid.UUID, now time.Time) error {
	m, ok := s.matches[matchID]
	if !ok || m.Status != enums.MatchStatusActive {
		return pgrepo.ErrMatchNotFound
	}
	m.Status = enums.MatchStatusUnmatched
	m.UnmatchedAt = &now
	return nil
}

type contactStoreStub struct {
	phones map[uuid.UUID]string
}

func (s contactStoreStub) GetPhone(_ context.Context, userID uuid.UUID) (string, error) {
	return s.phones[userID], nil
}

func newServiceForTest(store *matchStoreStub) *Service {
	return &Service{
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		},
		matchStore: store,
		now:        func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func activeMatch(tenant, host uuid.UUID) *model.Match {
	listing := uuid.New()
	return &model.Match{
		ID:            uuid.New(),
		TenantID:      tenant,
		HostID:        host,
		ListingID:     &listing,
		Status:        enums.MatchStatusActive,
		ContactShared: true,
		ChatEnabled:   true,
		MatchedAt:     time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestGetIsParticipantScoped(t *testing.T) {
	tenant, host, outsider := uuid.New(), uuid.New(), uuid.New()
	m := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(m))
	ctx := context.Background()

	if _, err := svc.Get(ctx, tenant, m.ID); err != nil {
		t.Fatalf("tenant get: %v", err)
	}
	if _, err := svc.Get(ctx, host, m.ID); err != nil {
		t.Fatalf("host get: %v", err)
	}
	if _, err := svc.Get(ctx, outsider, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("outsider should see not found, got %v", err)
	}
}

func TestGetSharesContactOnlyWhileShared(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	contacts := contactStoreStub{phones: map[uuid.UUID]string{
		tenant: "+79990001122",
		host:   "+79990003344",
	}}
	ctx := context.Background()

	shared := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(shared))
	svc.contacts = contacts

	detail, err := svc.Get(ctx, tenant, shared.ID)
	if err != nil {
		t.Fatalf("get shared match: %v", err)
	}
	if detail.Tenant == nil || detail.Host == nil {
		t.Fatalf("detail must carry both parties: %+v", detail)
	}
	if detail.Tenant.Phone == nil || *detail.Tenant.Phone != "+79990001122" {
		t.Fatalf("tenant phone not shared: %+v", detail.Tenant)
	}
	if detail.Host.Phone == nil || *detail.Host.Phone != "+79990003344" {
		t.Fatalf("host phone not shared: %+v", detail.Host)
	}

	hidden := activeMatch(tenant, host)
	hidden.ContactShared = false
	svc = newServiceForTest(newMatchStoreStub(hidden))
	svc.contacts = contacts

	detail, err = svc.Get(ctx, tenant, hidden.ID)
	if err != nil {
		t.Fatalf("get unshared match: %v", err)
	}
	if detail.Tenant == nil || detail.Host == nil {
		t.Fatalf("detail must still carry party ids: %+v", detail)
	}
	if detail.Tenant.Phone != nil || detail.Host.Phone != nil {
		t.Fatalf("phones must stay hidden without contact sharing: %+v %+v", detail.Tenant, detail.Host)
	}
	if detail.Tenant.UserID != tenant || detail.Host.UserID != host {
		t.Fatalf("party ids wrong: %+v %+v", detail.Tenant, detail.Host)
	}
}

func TestScheduleVisitOnActiveMatch(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	m := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(m))
	ctx := context.Background()

	visitDate := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	updated, err := svc.ScheduleVisit(ctx, tenant, m.ID, visitDate)
	if err != nil {
		t.Fatalf("schedule visit: %v", err)
	}
	if !updated.VisitScheduled || updated.VisitDate == nil || !updated.VisitDate.Equal(visitDate) {
		t.Fatalf("visit flags not set: %+v", updated)
	}
	if updated.Status != enums.MatchStatusActive {
		t.Fatalf("scheduling a visit must not change match status, got %s", updated.Status)
	}
}

func TestVisitStatusLifecycle(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	m := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(m))
	ctx := context.Background()

	if _, err := svc.UpdateVisitStatus(ctx, tenant, m.ID, enums.VisitStatusCompleted); !errors.Is(err, ErrVisitNotScheduled) {
		t.Fatalf("update before any visit: expected ErrVisitNotScheduled, got %v", err)
	}

	firstDate := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	scheduled, err := svc.ScheduleVisit(ctx, tenant, m.ID, firstDate)
	if err != nil {
		t.Fatalf("schedule visit: %v", err)
	}
	if scheduled.VisitStatus == nil || *scheduled.VisitStatus != string(enums.VisitStatusScheduled) {
		t.Fatalf("first schedule should mark 'scheduled': %+v", scheduled.VisitStatus)
	}

	moved, err := svc.ScheduleVisit(ctx, host, m.ID, firstDate.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("reschedule visit: %v", err)
	}
	if moved.VisitStatus == nil || *moved.VisitStatus != string(enums.VisitStatusRescheduled) {
		t.Fatalf("second schedule should mark 'rescheduled': %+v", moved.VisitStatus)
	}

	done, err := svc.UpdateVisitStatus(ctx, tenant, m.ID, enums.VisitStatusCompleted)
	if err != nil {
		t.Fatalf("complete visit: %v", err)
	}
	if done.VisitStatus == nil || *done.VisitStatus != string(enums.VisitStatusCompleted) {
		t.Fatalf("visit not completed: %+v", done.VisitStatus)
	}

	if _, err := svc.UpdateVisitStatus(ctx, tenant, m.ID, enums.VisitStatusScheduled); !errors.Is(err, ErrValidation) {
		t.Fatalf("'scheduled' is not a valid manual transition, got %v", err)
	}
	if _, err := svc.UpdateVisitStatus(ctx, tenant, m.ID, enums.VisitStatus("bogus")); !errors.Is(err, ErrValidation) {
		t.Fatalf("bogus visit status: expected ErrValidation, got %v", err)
	}
}

func TestTerminalStatusRejectsLifecycleOps(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	m := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(m))
	ctx := context.Background()

	closed, err := svc.CloseDeal(ctx, host, m.ID, 25000)
	if err != nil {
		t.Fatalf("close deal: %v", err)
	}
	if closed.Status != enums.MatchStatusDealClosed || !closed.DealClosed || closed.DealAmount == nil {
		t.Fatalf("deal not closed: %+v", closed)
	}

	if _, err := svc.ScheduleVisit(ctx, tenant, m.ID, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)); !errors.Is(err, ErrMatchClosed) {
		t.Fatalf("schedule visit on closed deal: expected ErrMatchClosed, got %v", err)
	}
	if _, err := svc.CloseDeal(ctx, host, m.ID, 30000); !errors.Is(err, ErrMatchClosed) {
		t.Fatalf("double close: expected ErrMatchClosed, got %v", err)
	}
	if _, err := svc.Unmatch(ctx, tenant, m.ID); !errors.Is(err, ErrMatchClosed) {
		t.Fatalf("unmatch after deal close: expected ErrMatchClosed, got %v", err)
	}
}

func TestUnmatchIsIdempotent(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	m := activeMatch(tenant, host)
	svc := newServiceForTest(newMatchStoreStub(m))
	ctx := context.Background()

	first, err := svc.Unmatch(ctx, tenant, m.ID)
	if err != nil {
		t.Fatalf("unmatch: %v", err)
	}
	if first.Status != enums.MatchStatusUnmatched || first.UnmatchedAt == nil {
		t.Fatalf("unmatch not applied: %+v", first)
	}

	second, err := svc.Unmatch(ctx, host, m.ID)
	if err != nil {
		t.Fatalf("repeat unmatch should be a no-op: %v", err)
	}
	if second.Status != enums.MatchStatusUnmatched {
		t.Fatalf("repeat unmatch changed status: %+v", second)
	}

	if _, err := svc.ScheduleVisit(ctx, tenant, m.ID, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)); !errors.Is(err, ErrMatchClosed) {
		t.Fatalf("schedule visit after unmatch: expected ErrMatchClosed, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	tenant, host := uuid.New(), uuid.New()
	active := activeMatch(tenant, host)
	gone := activeMatch(tenant, uuid.New())
	gone.Status = enums.MatchStatusUnmatched
	svc := newServiceForTest(newMatchStoreStub(active, gone))
	ctx := context.Background()

	all, err := svc.List(ctx, tenant, "", 1, 20)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", all.Total)
	}

	onlyActive, err := svc.List(ctx, tenant, enums.MatchStatusActive, 1, 20)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if onlyActive.Total != 1 || onlyActive.Items[0].ID != active.ID {
		t.Fatalf("unexpected active list: %+v", onlyActive)
	}

	if _, err := svc.List(ctx, tenant, enums.MatchStatus("bogus"), 1, 20); !errors.Is(err, ErrValidation) {
		t.Fatalf("bogus status filter: expected ErrValidation, got %v", err)
	}
}

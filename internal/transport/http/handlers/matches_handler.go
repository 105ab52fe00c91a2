package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	matchessvc "github.com/becomecodx/HOMIGO/internal/services/matches"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	query := r.URL.Query()
	status := enums.MatchStatus(query.Get("status"))
	page := parseIntOrDefault(query.Get("page"), 1)
	limit := parseIntOrDefault(query.Get("limit"), 0)

	res, err := h.service.List(r.Context(), identity.UserID, status, page, limit)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MatchListResponse{
		Items: res.Items,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

func (h *MatchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, ok := urlUUID(r, "matchID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	detail, err := h.service.Get(r.Context(), identity.UserID, matchID)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, detail)
}

func (h *MatchesHandler) ScheduleVisit(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, ok := urlUUID(r, "matchID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.ScheduleVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	match, err := h.service.ScheduleVisit(r.Context(), identity.UserID, matchID, req.VisitDate)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, match)
}

func (h *MatchesHandler) UpdateVisitStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, ok := urlUUID(r, "matchID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.UpdateVisitStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	match, err := h.service.UpdateVisitStatus(r.Context(), identity.UserID, matchID, enums.VisitStatus(req.Status))
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, match)
}

func (h *MatchesHandler) CloseDeal(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, ok := urlUUID(r, "matchID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.CloseDealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	match, err := h.service.CloseDeal(r.Context(), identity.UserID, matchID, req.Amount)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, match)
}

func (h *MatchesHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, ok := urlUUID(r, "matchID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	match, err := h.service.Unmatch(r.Context(), identity.UserID, matchID)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, match)
}

func handleMatchesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match request")
	case errors.Is(err, matchessvc.ErrMatchNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
	case errors.Is(err, matchessvc.ErrMatchClosed):
		writeConflict(w, "MATCH_CLOSED", "match is no longer active")
	case errors.Is(err, matchessvc.ErrVisitNotScheduled):
		writeConflict(w, "VISIT_NOT_SCHEDULED", "no visit is scheduled for this match")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func urlUUID(r *http.Request, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

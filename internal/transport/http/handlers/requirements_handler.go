package handlers

import (
	"errors"
	"net/http"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	reqsvc "github.com/becomecodx/HOMIGO/internal/services/requirements"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type RequirementsHandler struct {
	service *reqsvc.Service
}

func NewRequirementsHandler(service *reqsvc.Service) *RequirementsHandler {
	return &RequirementsHandler{service: service}
}

func (h *RequirementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUIREMENTS_SERVICE_UNAVAILABLE", "requirements service is unavailable")
		return
	}

	var req dto.CreateRequirementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	requirement, err := h.service.Create(r.Context(), reqsvc.CreateInput{
		TenantID:   identity.UserID,
		Title:      req.Title,
		BudgetMin:  req.BudgetMin,
		BudgetMax:  req.BudgetMax,
		Localities: req.Localities,
		City:       req.City,
		Occupancy:  req.Occupancy,
		MoveInDate: req.MoveInDate,
	})
	if err != nil {
		handleRequirementsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, requirement)
}

func (h *RequirementsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUIREMENTS_SERVICE_UNAVAILABLE", "requirements service is unavailable")
		return
	}

	requirementID, ok := urlUUID(r, "requirementID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid requirement id")
		return
	}

	requirement, err := h.service.Get(r.Context(), requirementID)
	if err != nil {
		handleRequirementsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, requirement)
}

func (h *RequirementsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUIREMENTS_SERVICE_UNAVAILABLE", "requirements service is unavailable")
		return
	}

	query := r.URL.Query()
	res, err := h.service.ListMine(r.Context(), identity.UserID, parseIntOrDefault(query.Get("page"), 1), parseIntOrDefault(query.Get("limit"), 0))
	if err != nil {
		handleRequirementsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RequirementListResponse{
		Items: res.Items,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

func (h *RequirementsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUIREMENTS_SERVICE_UNAVAILABLE", "requirements service is unavailable")
		return
	}

	requirementID, ok := urlUUID(r, "requirementID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid requirement id")
		return
	}

	var req dto.UpdateRequirementStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), requirementID, identity.UserID, enums.RequirementStatus(req.Status)); err != nil {
		handleRequirementsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func handleRequirementsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reqsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid requirement request")
	case errors.Is(err, reqsvc.ErrNotFound):
		writeNotFound(w, "REQUIREMENT_NOT_FOUND", "requirement not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

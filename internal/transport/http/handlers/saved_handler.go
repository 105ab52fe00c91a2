package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	savedsvc "github.com/becomecodx/HOMIGO/internal/services/saved"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type SavedHandler struct {
	service *savedsvc.Service
}

func NewSavedHandler(service *savedsvc.Service) *SavedHandler {
	return &SavedHandler{service: service}
}

func (h *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAVED_SERVICE_UNAVAILABLE", "saved items service is unavailable")
		return
	}

	var req dto.SaveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := h.service.Save(r.Context(), identity.UserID, req.ListingID, req.RequirementID, req.Notes)
	if err != nil {
		handleSavedError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, item)
}

func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAVED_SERVICE_UNAVAILABLE", "saved items service is unavailable")
		return
	}

	query := r.URL.Query()
	res, err := h.service.List(r.Context(), identity.UserID, parseIntOrDefault(query.Get("page"), 1), parseIntOrDefault(query.Get("limit"), 0))
	if err != nil {
		handleSavedError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SavedListResponse{
		Items: res.Items,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

func (h *SavedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAVED_SERVICE_UNAVAILABLE", "saved items service is unavailable")
		return
	}

	savedID, ok := urlUUID(r, "savedID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid saved item id")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, savedID); err != nil {
		handleSavedError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func handleSavedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, savedsvc.ErrValidation), errors.Is(err, savedsvc.ErrInvalidTarget):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid saved item request")
	case errors.Is(err, savedsvc.ErrAlreadySaved):
		writeConflict(w, "ALREADY_SAVED", "item is already saved")
	case errors.Is(err, savedsvc.ErrNotFound):
		writeNotFound(w, "SAVED_NOT_FOUND", "saved item not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

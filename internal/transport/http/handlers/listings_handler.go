package handlers

import (
	"errors"
	"net/http"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	listingsvc "github.com/becomecodx/HOMIGO/internal/services/listings"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type ListingsHandler struct {
	service *listingsvc.Service
}

func NewListingsHandler(service *listingsvc.Service) *ListingsHandler {
	return &ListingsHandler{service: service}
}

func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	var req dto.CreateListingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	listing, err := h.service.Create(r.Context(), listingsvc.CreateInput{
		HostID:          identity.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Locality:        req.Locality,
		City:            req.City,
		State:           req.State,
		PropertyType:    req.PropertyType,
		Configuration:   req.Configuration,
		Furnishing:      req.Furnishing,
		TotalAreaSqft:   req.TotalAreaSqft,
		RentMonthly:     req.RentMonthly,
		DepositAmount:   req.DepositAmount,
		AvailableFrom:   req.AvailableFrom,
		PreferredTenant: req.PreferredTenant,
	})
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, listing)
}

func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listingID, ok := urlUUID(r, "listingID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	listing, err := h.service.Get(r.Context(), listingID)
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, listing)
}

func (h *ListingsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	query := r.URL.Query()
	res, err := h.service.ListMine(r.Context(), identity.UserID, parseIntOrDefault(query.Get("page"), 1), parseIntOrDefault(query.Get("limit"), 0))
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingListResponse{
		Items: res.Items,
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

func (h *ListingsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listingID, ok := urlUUID(r, "listingID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	var req dto.UpdateListingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), listingID, identity.UserID, enums.ListingStatus(req.Status)); err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func handleListingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing request")
	case errors.Is(err, listingsvc.ErrNotFound):
		writeNotFound(w, "LISTING_NOT_FOUND", "listing not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

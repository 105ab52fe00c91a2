package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	feedsvc "github.com/becomecodx/HOMIGO/internal/services/feed"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type FeedHandler struct {
	service *feedsvc.Service
}

func NewFeedHandler(service *feedsvc.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Listings(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	query := r.URL.Query()
	result, err := h.service.Listings(r.Context(), feedsvc.ListingQuery{
		BudgetMin:     parseFloatOrNil(query.Get("budget_min")),
		BudgetMax:     parseFloatOrNil(query.Get("budget_max")),
		City:          strings.TrimSpace(query.Get("city")),
		Localities:    splitCSV(query.Get("localities")),
		PropertyTypes: splitCSV(query.Get("property_types")),
		Furnishing:    splitCSV(query.Get("furnishing")),
		Sort:          strings.TrimSpace(query.Get("sort")),
		Page:          parseIntOrDefault(query.Get("page"), 1),
		Limit:         parseIntOrDefault(query.Get("limit"), 0),
	})
	if err != nil {
		handleFeedError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingFeedResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

func (h *FeedHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	query := r.URL.Query()
	result, err := h.service.Requirements(r.Context(), feedsvc.RequirementQuery{
		BudgetMin: parseFloatOrNil(query.Get("budget_min")),
		BudgetMax: parseFloatOrNil(query.Get("budget_max")),
		City:      strings.TrimSpace(query.Get("city")),
		Page:      parseIntOrDefault(query.Get("page"), 1),
		Limit:     parseIntOrDefault(query.Get("limit"), 0),
	})
	if err != nil {
		handleFeedError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RequirementFeedResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

func handleFeedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feedsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid feed request")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to load feed")
	}
}

func parseIntOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func parseFloatOrNil(raw string) *float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	swipesvc "github.com/becomecodx/HOMIGO/internal/services/swipes"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Swipe(r.Context(), swipesvc.SwipeInput{
		SwiperID:      identity.UserID,
		SwiperType:    enums.SwiperType(identity.Role),
		TargetUserID:  req.TargetUserID,
		ListingID:     req.ListingID,
		RequirementID: req.RequirementID,
		Action:        enums.SwipeAction(req.Action),
	})
	if err != nil {
		handleSwipeError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SwipeResponse{
		Swipe:   res.Swipe,
		IsNew:   res.IsNew,
		IsMatch: res.IsMatch,
		Match:   res.Match,
	})
}

func handleSwipeError(w http.ResponseWriter, err error) {
	if tooFast, ok := swipesvc.IsTooFast(err); ok {
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
			Code:          "TOO_FAST",
			Message:       "swipe rate limit exceeded",
			RetryAfterSec: tooFast.RetryAfter(),
		})
		return
	}

	switch {
	case errors.Is(err, swipesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, swipesvc.ErrInvalidTarget):
		writeBadRequest(w, "INVALID_TARGET", "swipe target is invalid")
	case errors.Is(err, swipesvc.ErrUnsupportedAction):
		writeBadRequest(w, "UNSUPPORTED_ACTION", "swipe action is not supported")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

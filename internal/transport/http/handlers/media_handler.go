package handlers

import (
	"errors"
	"net/http"
	"strings"

	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	mediasvc "github.com/becomecodx/HOMIGO/internal/services/media"
	"github.com/becomecodx/HOMIGO/internal/transport/http/dto"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
)

const maxPhotoUploadSize = 20 << 20 // 20 MiB

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) UploadListingPhoto(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	listingID, ok := urlUUID(r, "listingID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadSize)
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file is required")
		return
	}
	defer file.Close()

	if header == nil || header.Size <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	isPrimary := strings.EqualFold(r.FormValue("is_primary"), "true")

	photo, err := h.service.UploadListingPhoto(r.Context(), identity.UserID, listingID, header.Filename, contentType, file, header.Size, isPrimary)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, photoResponse(photo))
}

func (h *MediaHandler) ListListingPhotos(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	listingID, ok := urlUUID(r, "listingID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	photos, err := h.service.ListListingPhotos(r.Context(), listingID)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, photoResponse(photo))
	}

	httperrors.Write(w, http.StatusOK, dto.PhotoListResponse{Items: items})
}

func photoResponse(photo mediasvc.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		PhotoID:    photo.ID,
		ListingID:  photo.ListingID,
		URL:        photo.URL,
		IsPrimary:  photo.IsPrimary,
		UploadedAt: photo.UploadedAt,
	}
}

func handleMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid media request")
	case errors.Is(err, mediasvc.ErrUnsupportedPhotoType):
		httperrors.Write(w, http.StatusUnsupportedMediaType, httperrors.APIError{
			Code:    "UNSUPPORTED_PHOTO_TYPE",
			Message: "photo content type is not allowed",
		})
	case errors.Is(err, mediasvc.ErrListingNotFound):
		writeNotFound(w, "LISTING_NOT_FOUND", "listing not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

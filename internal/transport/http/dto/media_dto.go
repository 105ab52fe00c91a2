package dto

import (
	"time"

	"github.com/google/uuid"
)

type PhotoResponse struct {
	PhotoID    uuid.UUID `json:"photo_id"`
	ListingID  uuid.UUID `json:"listing_id"`
	URL        string    `json:"url"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type PhotoListResponse struct {
	Items []PhotoResponse `json:"items"`
}

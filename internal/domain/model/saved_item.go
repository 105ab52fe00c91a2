package model

import (
	"time"

	"github.com/google/uuid"
)

type SavedItem struct {
	ID            uuid.UUID  `json:"saved_id"`
	UserID        uuid.UUID  `json:"user_id"`
	ListingID     *uuid.UUID `json:"saved_listing_id,omitempty"`
	RequirementID *uuid.UUID `json:"saved_requirement_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

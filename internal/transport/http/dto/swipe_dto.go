package dto

import (
	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type SwipeRequest struct {
	TargetUserID  uuid.UUID  `json:"target_user_id"`
	ListingID     *uuid.UUID `json:"listing_id,omitempty"`
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	Action        string     `json:"action"`
}

type SwipeResponse struct {
	Swipe   model.Swipe  `json:"swipe"`
	IsNew   bool         `json:"is_new"`
	IsMatch bool         `json:"is_match"`
	Match   *model.Match `json:"match,omitempty"`
}

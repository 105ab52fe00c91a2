package dto

import (
	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type SaveItemRequest struct {
	ListingID     *uuid.UUID `json:"listing_id,omitempty"`
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type SavedListResponse struct {
	Items []model.SavedItem `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

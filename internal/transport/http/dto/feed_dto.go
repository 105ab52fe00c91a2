package dto

import "github.com/becomecodx/HOMIGO/internal/domain/model"

type ListingFeedResponse struct {
	Items []model.Listing `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type RequirementFeedResponse struct {
	Items []model.Requirement `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

package dto

import (
	"time"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type CreateListingRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Locality        string     `json:"locality"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	PropertyType    string     `json:"property_type,omitempty"`
	Configuration   string     `json:"configuration,omitempty"`
	Furnishing      string     `json:"furnishing,omitempty"`
	TotalAreaSqft   int        `json:"total_area_sqft,omitempty"`
	RentMonthly     float64    `json:"rent_monthly"`
	DepositAmount   float64    `json:"deposit_amount,omitempty"`
	AvailableFrom   *time.Time `json:"available_from,omitempty"`
	PreferredTenant string     `json:"preferred_tenant,omitempty"`
}

type UpdateListingStatusRequest struct {
	Status string `json:"status"`
}

type ListingListResponse struct {
	Items []model.Listing `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
)

type Listing struct {
	ID              uuid.UUID           `json:"listing_id"`
	HostID          uuid.UUID           `json:"host_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Locality        string              `json:"locality"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	PropertyType    string              `json:"property_type,omitempty"`
	Configuration   string              `json:"configuration,omitempty"`
	Furnishing      string              `json:"furnishing,omitempty"`
	TotalAreaSqft   int                 `json:"total_area_sqft,omitempty"`
	RentMonthly     float64             `json:"rent_monthly"`
	DepositAmount   float64             `json:"deposit_amount,omitempty"`
	AvailableFrom   *time.Time          `json:"available_from,omitempty"`
	PreferredTenant string              `json:"preferred_tenant,omitempty"`
	Status          enums.ListingStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ListingPhoto struct {
	ID         uuid.UUID `json:"photo_id"`
	ListingID  uuid.UUID `json:"listing_id"`
	ObjectKey  string    `json:"-"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

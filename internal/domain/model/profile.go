package model

import (
	"time"

	"github.com/google/uuid"
)

type TenantProfile struct {
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Occupation    string    `json:"occupation,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	AboutMe       string    `json:"about_me,omitempty"`
	CityPref      string    `json:"city_pref,omitempty"`
	FoodHabit     string    `json:"food_habit,omitempty"`
	HasPets       bool      `json:"has_pets"`
	Smokes        bool      `json:"smokes"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type HostProfile struct {
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	AboutMe         string    `json:"about_me,omitempty"`
	ResponseTimeHrs int       `json:"response_time_hrs,omitempty"`
	IsVerified      bool      `json:"is_verified"`
	UpdatedAt       time.Time `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type CreateRequirementRequest struct {
	Title      string     `json:"title"`
	BudgetMin  float64    `json:"budget_min"`
	BudgetMax  float64    `json:"budget_max"`
	Localities []string   `json:"localities,omitempty"`
	City       string     `json:"city"`
	Occupancy  string     `json:"occupancy,omitempty"`
	MoveInDate *time.Time `json:"move_in_date,omitempty"`
}

type UpdateRequirementStatusRequest struct {
	Status string `json:"status"`
}

type RequirementListResponse struct {
	Items []model.Requirement `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

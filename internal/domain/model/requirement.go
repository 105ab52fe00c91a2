package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
)

type Requirement struct {
	ID           uuid.UUID               `json:"requirement_id"`
	TenantID     uuid.UUID               `json:"tenant_id"`
	Title        string                  `json:"title"`
	BudgetMin    float64                 `json:"budget_min"`
	BudgetMax    float64                 `json:"budget_max"`
	Localities   []string                `json:"localities,omitempty"`
	City         string                  `json:"city"`
	Occupancy    string                  `json:"occupancy,omitempty"`
	MoveInDate   *time.Time              `json:"move_in_date,omitempty"`
	Status       enums.RequirementStatus `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

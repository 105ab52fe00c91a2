package dto

import (
	"time"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type MatchListResponse struct {
	Items []model.Match `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type ScheduleVisitRequest struct {
	VisitDate time.Time `json:"visit_date"`
}

type UpdateVisitStatusRequest struct {
	Status string `json:"status"`
}

type CloseDealRequest struct {
	Amount float64 `json:"amount"`
}

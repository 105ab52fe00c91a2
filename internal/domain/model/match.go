package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
)

type Match struct {
	ID                 uuid.UUID         `json:"match_id"`
	TenantID           uuid.UUID         `json:"tenant_id"`
	HostID             uuid.UUID         `json:"host_id"`
	ListingID          *uuid.UUID        `json:"listing_id,omitempty"`
	RequirementID      *uuid.UUID        `json:"requirement_id,omitempty"`
	CompatibilityScore *float64          `json:"compatibility_score,omitempty"`
	Status             enums.MatchStatus `json:"match_status"`
	ContactShared      bool              `json:"contact_shared"`
	ContactSharedAt    *time.Time        `json:"contact_shared_at,omitempty"`
	ChatEnabled        bool              `json:"chat_enabled"`
	VisitScheduled     bool              `json:"visit_scheduled"`
	VisitDate          *time.Time        `json:"visit_date,omitempty"`
	VisitStatus        *string           `json:"visit_status,omitempty"`
	DealClosed         bool              `json:"deal_closed"`
	DealClosedAt       *time.Time        `json:"deal_closed_at,omitempty"`
	DealAmount         *float64          `json:"deal_amount,omitempty"`
	MatchedAt          time.Time         `json:"matched_at"`
	UnmatchedAt        *time.Time        `json:"unmatched_at,omitempty"`
}

// MatchParty identifies one side of a match. Phone is populated only while
// the match has contact sharing enabled.
type MatchParty struct {
	UserID uuid.UUID `json:"user_id"`
	Phone  *string   `json:"phone,omitempty"`
}

type MatchDetail struct {
	Match
	Tenant *MatchParty `json:"tenant,omitempty"`
	Host   *MatchParty `json:"host,omitempty"`
}

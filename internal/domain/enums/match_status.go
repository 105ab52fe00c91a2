package enums

type MatchStatus string

const (
	MatchStatusActive     MatchStatus = "active"
	MatchStatusUnmatched  MatchStatus = "unmatched"
	MatchStatusDealClosed MatchStatus = "deal_closed"
)

type VisitStatus string

const (
	VisitStatusScheduled   VisitStatus = "scheduled"
	VisitStatusCompleted   VisitStatus = "completed"
	VisitStatusCancelled   VisitStatus = "cancelled"
	VisitStatusRescheduled VisitStatus = "rescheduled"
)

func (v VisitStatus) Valid() bool {
	switch v {
	case VisitStatusScheduled, VisitStatusCompleted, VisitStatusCancelled, VisitStatusRescheduled:
		return true
	default:
		return false
	}
}

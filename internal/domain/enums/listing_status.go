package enums

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPaused  ListingStatus = "paused"
	ListingStatusRented  ListingStatus = "rented"
	ListingStatusDeleted ListingStatus = "deleted"
)

type RequirementStatus string

const (
	RequirementStatusActive    RequirementStatus = "active"
	RequirementStatusInactive  RequirementStatus = "inactive"
	RequirementStatusFulfilled RequirementStatus = "fulfilled"
)

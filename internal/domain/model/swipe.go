package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/enums"
)

type Swipe struct {
	ID            uuid.UUID         `json:"swipe_id"`
	SwiperID      uuid.UUID         `json:"swiper_id"`
	SwiperType    enums.SwiperType  `json:"swiper_type"`
	ListingID     *uuid.UUID        `json:"swiped_listing_id,omitempty"`
	RequirementID *uuid.UUID        `json:"swiped_requirement_id,omitempty"`
	TargetUserID  uuid.UUID         `json:"swiped_user_id"`
	Action        enums.SwipeAction `json:"action"`
	CreatedAt     time.Time         `json:"created_at"`
}

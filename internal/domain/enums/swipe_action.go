package enums

type SwipeAction string

const (
	SwipeActionLike      SwipeAction = "like"
	SwipeActionDislike   SwipeAction = "dislike"
	SwipeActionSuperLike SwipeAction = "super_like"
	SwipeActionSkip      SwipeAction = "skip"
)

func (a SwipeAction) Valid() bool {
	switch a {
	case SwipeActionLike, SwipeActionDislike, SwipeActionSuperLike, SwipeActionSkip:
		return true
	default:
		return false
	}
}

// Positive reports whether the action expresses interest and can produce a
// match.
func (a SwipeAction) Positive() bool {
	return a == SwipeActionLike || a == SwipeActionSuperLike
}

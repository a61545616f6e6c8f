package domain

// SwipeDecision is the binary outcome of a completed swipe gesture.
type SwipeDecision int

const (
	DecisionKeep SwipeDecision = iota
	DecisionDelete
)

func (d SwipeDecision) String() string {
	if d == DecisionDelete {
		return "delete"
	}
	return "keep"
}

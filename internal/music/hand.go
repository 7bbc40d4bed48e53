package music

// Hand selects one of the two hands of a piece. Each hand has its own
// measure sequence and its own distance thresholds in the configuration.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

// Opposite returns the other hand.
func (h Hand) Opposite() Hand {
	if h == LeftHand {
		return RightHand
	}
	return LeftHand
}

func (h Hand) String() string {
	if h == LeftHand {
		return "left"
	}
	return "right"
}

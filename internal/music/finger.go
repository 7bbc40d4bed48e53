package music

import (
	"fmt"
	"strconv"
)

// Finger identifies one of the five fingers of a hand, numbered the way
// piano fingerings are written: 1 is the thumb, 5 the pinky.
type Finger int

const (
	Thumb Finger = iota + 1
	Index
	Middle
	Ring
	Pinky
)

// FingerCount is the number of fingers per hand.
const FingerCount = 5

// NewFinger converts an integer finger number into a Finger,
// rejecting values outside [1, 5].
func NewFinger(value int) (Finger, error) {
	if value < int(Thumb) || value > int(Pinky) {
		return 0, fmt.Errorf("finger value must be in range [1, 5], got %d", value)
	}
	return Finger(value), nil
}

// IsValid reports whether the finger is one of the five defined values.
func (f Finger) IsValid() bool {
	return f >= Thumb && f <= Pinky
}

func (f Finger) String() string {
	return strconv.Itoa(int(f))
}

// AllFingers returns the five fingers in ascending order.
func AllFingers() [FingerCount]Finger {
	return [FingerCount]Finger{Thumb, Index, Middle, Ring, Pinky}
}

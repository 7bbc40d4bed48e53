package configuration

import (
	"fmt"

	"handspan/internal/music"
)

// FingerPair indexes one of the ten unordered finger pairs of a hand.
type FingerPair int

const (
	ThumbIndex  FingerPair = iota // 1-2
	ThumbMiddle                   // 1-3
	ThumbRing                     // 1-4
	ThumbPinky                    // 1-5
	IndexMiddle                   // 2-3
	IndexRing                     // 2-4
	IndexPinky                    // 2-5
	MiddleRing                    // 3-4
	MiddlePinky                   // 3-5
	RingPinky                     // 4-5
)

// FingerPairCount is the number of unordered finger pairs.
const FingerPairCount = 10

// pairLookup maps an ordered (low, high) finger pair to its index. Repeated
// fingers map onto the nearest neighboring pair so that distance lookups
// stay total.
var pairLookup = [music.FingerCount][music.FingerCount]FingerPair{
	{ThumbIndex, ThumbIndex, ThumbMiddle, ThumbRing, ThumbPinky},
	{ThumbIndex, IndexMiddle, IndexMiddle, IndexRing, IndexPinky},
	{ThumbMiddle, IndexMiddle, MiddleRing, MiddleRing, MiddlePinky},
	{ThumbRing, IndexRing, MiddleRing, RingPinky, RingPinky},
	{ThumbPinky, IndexPinky, MiddlePinky, RingPinky, RingPinky},
}

// PairOf returns the finger pair for two fingers in either order.
func PairOf(f1, f2 music.Finger) FingerPair {
	a, b := int(f1), int(f2)
	if a > b {
		a, b = b, a
	}
	return pairLookup[a-1][b-1]
}

var pairNames = [FingerPairCount]string{
	"1-2", "1-3", "1-4", "1-5", "2-3", "2-4", "2-5", "3-4", "3-5", "4-5",
}

func (p FingerPair) String() string {
	if p < 0 || p >= FingerPairCount {
		return fmt.Sprintf("FingerPair(%d)", int(p))
	}
	return pairNames[p]
}

// ParseFingerPair converts a "low-high" label such as "1-2" into a
// FingerPair. Used by custom configuration files.
func ParseFingerPair(s string) (FingerPair, error) {
	for i, name := range pairNames {
		if name == s {
			return FingerPair(i), nil
		}
	}
	return 0, NewConfigurationError("unknown finger pair: " + s)
}

package music

import (
	"fmt"
	"math/bits"
)

// TimeSignature is a plain numerator/denominator pair. The denominator must
// be a power of two, the numerator positive.
type TimeSignature struct {
	numerator   int
	denominator int
}

// NewTimeSignature validates and builds a time signature.
func NewTimeSignature(numerator, denominator int) (TimeSignature, error) {
	if numerator <= 0 {
		return TimeSignature{}, fmt.Errorf("time signature numerator must be > 0, got %d", numerator)
	}
	if denominator <= 0 || bits.OnesCount(uint(denominator)) != 1 {
		return TimeSignature{}, fmt.Errorf("time signature denominator must be a power of 2, got %d", denominator)
	}
	return TimeSignature{numerator: numerator, denominator: denominator}, nil
}

func (ts TimeSignature) Numerator() int   { return ts.numerator }
func (ts TimeSignature) Denominator() int { return ts.denominator }

// CommonTime is 4/4.
func CommonTime() TimeSignature {
	return TimeSignature{numerator: 4, denominator: 4}
}

// CutTime is 2/2.
func CutTime() TimeSignature {
	return TimeSignature{numerator: 2, denominator: 2}
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.numerator, ts.denominator)
}

package music

import "fmt"

// PitchClassCount is the number of positions in one octave of the modified
// chromatic system. Two of the fourteen positions (5 and 13) do not
// correspond to physical keys and exist only for enharmonic bookkeeping.
const PitchClassCount = 14

// Pitch is a position within one octave of the modified chromatic system:
// C=0, C#=1, D=2, D#=3, E=4, F=6, F#=7, G=8, G#=9, A=10, A#=11, B=12.
// The value is range-checked on construction and immutable afterwards.
type Pitch struct {
	value int
}

// NewPitch creates a pitch class from an integer in [0, 13].
// Values outside the range are rejected with an error.
func NewPitch(value int) (Pitch, error) {
	if value < 0 || value > PitchClassCount-1 {
		return Pitch{}, fmt.Errorf("pitch value must be in range [0, 13], got %d", value)
	}
	return Pitch{value: value}, nil
}

// Value returns the raw pitch class in [0, 13].
func (p Pitch) Value() int {
	return p.value
}

// IsBlackKey reports whether the pitch class lands on a black key.
// The gap positions 5 and 13 are not black keys.
func (p Pitch) IsBlackKey() bool {
	switch p.value % PitchClassCount {
	case 1, 3, 7, 9, 11:
		return true
	default:
		return false
	}
}

// DistanceTo returns the absolute distance to another pitch class
// within the same octave.
func (p Pitch) DistanceTo(other Pitch) int {
	d := p.value - other.value
	if d < 0 {
		d = -d
	}
	return d
}

func (p Pitch) String() string {
	return fmt.Sprintf("Pitch(%d)", p.value)
}

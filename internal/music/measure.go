package music

import "fmt"

// Measure is an ordered run of slices tagged with the printed measure
// number and the time signature in effect.
type Measure struct {
	number  int
	slices  []Slice
	timeSig TimeSignature
}

// NewMeasure builds a measure. The number must be positive and at least one
// slice is required.
func NewMeasure(number int, slices []Slice, timeSig TimeSignature) (Measure, error) {
	if number <= 0 {
		return Measure{}, fmt.Errorf("measure number must be > 0, got %d", number)
	}
	if len(slices) == 0 {
		return Measure{}, fmt.Errorf("measure %d must contain at least one slice", number)
	}
	owned := make([]Slice, len(slices))
	copy(owned, slices)
	return Measure{number: number, slices: owned, timeSig: timeSig}, nil
}

func (m Measure) Number() int                  { return m.number }
func (m Measure) Len() int                     { return len(m.slices) }
func (m Measure) TimeSignature() TimeSignature { return m.timeSig }

// At returns the slice at the given position.
// Panics when the index is out of range.
func (m Measure) At(i int) Slice {
	if i < 0 || i >= len(m.slices) {
		panic("measure slice index out of range")
	}
	return m.slices[i]
}

func (m Measure) String() string {
	return fmt.Sprintf("Measure(%d, %d slices, %s)", m.number, len(m.slices), m.timeSig)
}

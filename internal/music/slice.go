package music

import (
	"fmt"
	"sort"
)

// MaxNotesPerSlice is the largest chord one hand can hold.
const MaxNotesPerSlice = 5

// Slice is a group of simultaneously sounding notes (a chord, a single note
// or a rest). Notes are kept sorted by absolute pitch ascending, so index 0
// is always the lowest note.
type Slice struct {
	notes []Note
}

// NewSlice builds a slice from the given notes, sorting them by absolute
// pitch. More than MaxNotesPerSlice notes is rejected.
func NewSlice(notes ...Note) (Slice, error) {
	if len(notes) > MaxNotesPerSlice {
		return Slice{}, fmt.Errorf("slice cannot contain more than %d notes, got %d", MaxNotesPerSlice, len(notes))
	}
	sorted := make([]Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AbsolutePitch() < sorted[j].AbsolutePitch()
	})
	return Slice{notes: sorted}, nil
}

// Len returns the number of notes in the slice, rests included.
func (s Slice) Len() int {
	return len(s.notes)
}

// At returns the note at the given position in pitch order.
// Panics when the index is out of range.
func (s Slice) At(i int) Note {
	if i < 0 || i >= len(s.notes) {
		panic("slice note index out of range")
	}
	return s.notes[i]
}

// NonRestCount returns how many sounding notes the slice holds.
func (s Slice) NonRestCount() int {
	count := 0
	for _, n := range s.notes {
		if !n.IsRest() {
			count++
		}
	}
	return count
}

// IsPlayable reports whether the slice contains at least one sounding note
// and therefore consumes one fingering slot.
func (s Slice) IsPlayable() bool {
	for _, n := range s.notes {
		if !n.IsRest() {
			return true
		}
	}
	return false
}

// IsChord reports whether the slice holds two or more sounding notes.
func (s Slice) IsChord() bool {
	return s.NonRestCount() >= 2
}

func (s Slice) String() string {
	return fmt.Sprintf("Slice(%d notes)", len(s.notes))
}

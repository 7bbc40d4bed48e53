package music

import (
	"fmt"
	"strings"
)

// Assignment is one optional finger slot of a Fingering. An unassigned slot
// is a distinct state: it is neither a rest (a rest has no slot at all) nor
// any finger value.
type Assignment struct {
	finger   Finger
	assigned bool
}

// Assigned creates a slot holding the given finger.
func Assigned(f Finger) Assignment {
	return Assignment{finger: f, assigned: true}
}

// Unassigned creates an empty slot.
func Unassigned() Assignment {
	return Assignment{}
}

// Finger returns the assigned finger and whether the slot is assigned.
func (a Assignment) Finger() (Finger, bool) {
	return a.finger, a.assigned
}

// Fingering is the finger assignment for one playable slice: one optional
// slot per note position, in the same pitch-ascending order as the slice's
// notes.
type Fingering struct {
	slots []Assignment
}

// NewFingering builds a fingering from the given slots.
func NewFingering(slots ...Assignment) Fingering {
	owned := make([]Assignment, len(slots))
	copy(owned, slots)
	return Fingering{slots: owned}
}

// FingeringOf builds a fully assigned fingering from finger values.
func FingeringOf(fingers ...Finger) Fingering {
	slots := make([]Assignment, len(fingers))
	for i, f := range fingers {
		slots[i] = Assigned(f)
	}
	return Fingering{slots: slots}
}

// Len returns the number of slots.
func (f Fingering) Len() int {
	return len(f.slots)
}

// At returns the finger at slot i and whether the slot is assigned.
// Panics when the index is out of range.
func (f Fingering) At(i int) (Finger, bool) {
	if i < 0 || i >= len(f.slots) {
		panic("fingering slot index out of range")
	}
	return f.slots[i].Finger()
}

// IsComplete reports whether every slot is assigned.
func (f Fingering) IsComplete() bool {
	for _, slot := range f.slots {
		if !slot.assigned {
			return false
		}
	}
	return true
}

// ViolatesHardConstraint reports whether the same finger is assigned to two
// slots of the slice, which a single hand cannot play. The fingering length
// must match the slice length; a mismatch is an error, not a violation.
func (f Fingering) ViolatesHardConstraint(slice Slice) (bool, error) {
	if len(f.slots) != slice.Len() {
		return false, fmt.Errorf("fingering has %d slots but slice has %d notes", len(f.slots), slice.Len())
	}
	var used [FingerCount + 1]bool
	for _, slot := range f.slots {
		finger, ok := slot.Finger()
		if !ok {
			continue
		}
		if used[finger] {
			return true, nil
		}
		used[finger] = true
	}
	return false, nil
}

func (f Fingering) String() string {
	parts := make([]string, len(f.slots))
	for i, slot := range f.slots {
		if finger, ok := slot.Finger(); ok {
			parts[i] = finger.String()
		} else {
			parts[i] = "-"
		}
	}
	return "Fingering(" + strings.Join(parts, ",") + ")"
}

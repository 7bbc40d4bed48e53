package music

import "fmt"

// Note is one note or rest on a staff. All fields are validated on
// construction and immutable afterwards. Rests keep a pitch and octave for
// structural uniformity but are skipped by all scoring.
type Note struct {
	pitch    Pitch
	octave   int
	duration uint32
	rest     bool
	staff    int
	voice    int
}

// NewNote builds a note after validating octave [0, 10], duration > 0,
// staff {1, 2} and voice [1, 4].
func NewNote(pitch Pitch, octave int, duration uint32, rest bool, staff, voice int) (Note, error) {
	if octave < 0 || octave > 10 {
		return Note{}, fmt.Errorf("octave must be in range [0, 10], got %d", octave)
	}
	if duration == 0 {
		return Note{}, fmt.Errorf("duration must be > 0")
	}
	if staff != 1 && staff != 2 {
		return Note{}, fmt.Errorf("staff must be 1 or 2, got %d", staff)
	}
	if voice < 1 || voice > 4 {
		return Note{}, fmt.Errorf("voice must be in range [1, 4], got %d", voice)
	}
	return Note{
		pitch:    pitch,
		octave:   octave,
		duration: duration,
		rest:     rest,
		staff:    staff,
		voice:    voice,
	}, nil
}

func (n Note) Pitch() Pitch     { return n.pitch }
func (n Note) Octave() int      { return n.octave }
func (n Note) Duration() uint32 { return n.duration }
func (n Note) IsRest() bool     { return n.rest }
func (n Note) Staff() int       { return n.staff }
func (n Note) Voice() int       { return n.voice }

// AbsolutePitch places the note on the full keyboard. All distance math and
// note ordering is done in this coordinate.
func (n Note) AbsolutePitch() int {
	return n.octave*PitchClassCount + n.pitch.Value()
}

// Equal reports whether two notes sound the same key. Duration, voice and
// staff are not identity-bearing.
func (n Note) Equal(other Note) bool {
	return n.AbsolutePitch() == other.AbsolutePitch()
}

func (n Note) String() string {
	return fmt.Sprintf("Note(abs=%d, dur=%d, rest=%t, staff=%d, voice=%d)",
		n.AbsolutePitch(), n.duration, n.rest, n.staff, n.voice)
}

package musicxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"handspan/internal/music"
)

// XML document shapes for the score-partwise layout. Only the elements the
// evaluator needs are mapped; everything else is ignored by the decoder.

type scorePartwise struct {
	XMLName        xml.Name  `xml:"score-partwise"`
	Work           xmlWork   `xml:"work"`
	Identification xmlIdent  `xml:"identification"`
	Parts          []xmlPart `xml:"part"`
}

type xmlWork struct {
	Title string `xml:"work-title"`
}

type xmlIdent struct {
	Creators []xmlCreator `xml:"creator"`
}

type xmlCreator struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

type xmlPart struct {
	Measures []xmlMeasure `xml:"measure"`
}

type xmlMeasure struct {
	Number     int            `xml:"number,attr"`
	Attributes *xmlAttributes `xml:"attributes"`
	Notes      []xmlNote      `xml:"note"`
}

type xmlAttributes struct {
	Time *xmlTime `xml:"time"`
}

type xmlTime struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type xmlNote struct {
	Rest     *struct{} `xml:"rest"`
	Chord    *struct{} `xml:"chord"`
	Pitch    *xmlPitch `xml:"pitch"`
	Duration *uint32   `xml:"duration"`
	Staff    int       `xml:"staff"`
	Voice    int       `xml:"voice"`
}

type xmlPitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter"`
	Octave *int   `xml:"octave"`
}

// stepBase maps a natural step letter onto the fourteen-slot octave:
// C=0, D=2, E=4, F=6, G=8, A=10, B=12. Slots 5 and 13 have no key.
var stepBase = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 6, "G": 8, "A": 10, "B": 12,
}

// stepAlterToPitch converts a MusicXML step+alter to a pitch class and an
// octave correction. The gap slots and the octave edges fold onto their
// enharmonic keys: E# is F, Fb is E, B# is the next octave's C, Cb is the
// previous octave's B. Anything else outside the octave has no key and is
// rejected.
func stepAlterToPitch(step string, alter int) (music.Pitch, int, error) {
	base, ok := stepBase[strings.ToUpper(step)]
	if !ok {
		return music.Pitch{}, 0, NewParseError(fmt.Sprintf("invalid step %q", step))
	}

	value := base + alter
	octaveShift := 0
	switch {
	case value == 5:
		if alter > 0 {
			value = 6
		} else {
			value = 4
		}
	case value == 13:
		value = 0
		octaveShift = 1
	case value == -1:
		value = 12
		octaveShift = -1
	case value < 0 || value > 13:
		return music.Pitch{}, 0, NewParseError(
			fmt.Sprintf("pitch %s alter %d maps outside the octave", step, alter))
	}

	pitch, err := music.NewPitch(value)
	if err != nil {
		return music.Pitch{}, 0, err
	}
	return pitch, octaveShift, nil
}

// convertNote turns one XML note into a domain note.
func convertNote(n xmlNote) (music.Note, error) {
	rest := n.Rest != nil

	pitch, _ := music.NewPitch(0)
	octave := 4

	if !rest {
		if n.Pitch == nil {
			return music.Note{}, NewParseError("note is missing pitch")
		}
		if n.Pitch.Octave != nil {
			octave = *n.Pitch.Octave
		}
		var shift int
		var err error
		pitch, shift, err = stepAlterToPitch(n.Pitch.Step, n.Pitch.Alter)
		if err != nil {
			return music.Note{}, err
		}
		octave += shift
	}

	if n.Duration == nil {
		return music.Note{}, NewParseError("note is missing duration")
	}

	staff := n.Staff
	if staff == 0 {
		staff = 1
	}
	voice := n.Voice
	if voice == 0 {
		voice = 1
	}

	return music.NewNote(pitch, octave, *n.Duration, rest, staff, voice)
}

// slicesForStaff extracts the slices of one staff from a measure, grouping
// consecutive <chord/> notes into one slice. Notes that fail conversion are
// logged and skipped so one damaged note does not lose the measure.
func slicesForStaff(m xmlMeasure, staff int) []music.Slice {
	var slices []music.Slice
	var chord []music.Note

	flush := func() {
		if len(chord) == 0 {
			return
		}
		slice, err := music.NewSlice(chord...)
		if err != nil {
			slog.Warn("skipping slice", "error", err, "measure", m.Number)
		} else {
			slices = append(slices, slice)
		}
		chord = nil
	}

	for _, xn := range m.Notes {
		note, err := convertNote(xn)
		if err != nil {
			slog.Warn("skipping note", "error", err, "measure", m.Number)
			continue
		}
		noteStaff := xn.Staff
		if noteStaff == 0 {
			noteStaff = 1
		}
		if noteStaff != staff {
			continue
		}

		if xn.Chord != nil {
			chord = append(chord, note)
			continue
		}
		flush()
		chord = append(chord, note)
	}
	flush()

	return slices
}

// Parse reads a score-partwise MusicXML document and builds the piece. Only
// the first part is read; staff 1 becomes the right hand and staff 2 the
// left. The time signature carries forward between measures.
func Parse(r io.Reader) (music.Piece, error) {
	var doc scorePartwise
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return music.Piece{}, fmt.Errorf("malformed MusicXML: %w", err)
	}

	if len(doc.Parts) == 0 {
		return music.Piece{}, NewParseError("document has no part")
	}
	part := doc.Parts[0]

	metadata := music.Metadata{Title: doc.Work.Title, Composer: ""}
	if metadata.Title == "" {
		metadata.Title = "Untitled"
	}
	for _, c := range doc.Identification.Creators {
		if c.Type == "composer" {
			metadata.Composer = strings.TrimSpace(c.Name)
		}
	}
	if metadata.Composer == "" {
		metadata.Composer = "Unknown"
	}

	var left, right []music.Measure
	timeSig := music.CommonTime()

	for _, xm := range part.Measures {
		if xm.Attributes != nil {
			if xm.Attributes.Time != nil {
				ts, err := music.NewTimeSignature(xm.Attributes.Time.Beats, xm.Attributes.Time.BeatType)
				if err != nil {
					return music.Piece{}, fmt.Errorf("measure %d: %w", xm.Number, err)
				}
				timeSig = ts
			} else {
				timeSig = music.CommonTime()
			}
		}

		number := xm.Number
		if number == 0 {
			number = 1
		}

		if slices := slicesForStaff(xm, 1); len(slices) > 0 {
			measure, err := music.NewMeasure(number, slices, timeSig)
			if err != nil {
				return music.Piece{}, fmt.Errorf("measure %d: %w", xm.Number, err)
			}
			right = append(right, measure)
		}
		if slices := slicesForStaff(xm, 2); len(slices) > 0 {
			measure, err := music.NewMeasure(number, slices, timeSig)
			if err != nil {
				return music.Piece{}, fmt.Errorf("measure %d: %w", xm.Number, err)
			}
			left = append(left, measure)
		}
	}

	return music.NewPiece(metadata, left, right)
}

// ParseFile opens and parses a MusicXML file.
func ParseFile(path string) (music.Piece, error) {
	f, err := os.Open(path)
	if err != nil {
		return music.Piece{}, fmt.Errorf("error reading score file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

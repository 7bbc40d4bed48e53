package music

import (
	"errors"
	"fmt"
)

// Metadata carries the display information of a piece.
type Metadata struct {
	Title    string
	Composer string
}

// Piece is a whole composition: metadata plus two independent measure
// sequences, one per hand. Either hand may be empty, but not both.
type Piece struct {
	metadata Metadata
	left     []Measure
	right    []Measure
}

// NewPiece builds a piece. A piece with no measures in either hand is
// rejected.
func NewPiece(metadata Metadata, left, right []Measure) (Piece, error) {
	if len(left) == 0 && len(right) == 0 {
		return Piece{}, errors.New("piece must have at least one measure")
	}
	ownedLeft := make([]Measure, len(left))
	copy(ownedLeft, left)
	ownedRight := make([]Measure, len(right))
	copy(ownedRight, right)
	return Piece{metadata: metadata, left: ownedLeft, right: ownedRight}, nil
}

func (p Piece) Metadata() Metadata { return p.metadata }

// Measures returns the measure sequence of one hand.
func (p Piece) Measures(hand Hand) []Measure {
	if hand == LeftHand {
		return p.left
	}
	return p.right
}

// TotalMeasures counts measures across both hands.
func (p Piece) TotalMeasures() int {
	return len(p.left) + len(p.right)
}

func (p Piece) String() string {
	return fmt.Sprintf("Piece(%q by %q, left=%d, right=%d)",
		p.metadata.Title, p.metadata.Composer, len(p.left), len(p.right))
}

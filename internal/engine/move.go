package engine

import "fmt"

type MoveKind uint8

const (
	Regular MoveKind = iota
	Capture
	EnPassant
	Promotion
)

func (k MoveKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Capture:
		return "capture"
	case EnPassant:
		return "enPassant"
	case Promotion:
		return "promotion"
	}
	return fmt.Sprintf("MoveKind(%d)", uint8(k))
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	for _, kind := range []MoveKind{Regular, Capture, EnPassant, Promotion} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown move kind %q", text)
}

// CandidateMove is one destination the generator offers for a selected piece.
type CandidateMove struct {
	To   Square   `json:"to"`
	Kind MoveKind `json:"kind"`
}

// EnPassantMarker is the square a pawn landed on after a two-square advance.
type EnPassantMarker struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PendingPromotion marks a pawn that reached the last rank and waits for its
// owner to pick a replacement piece.
type PendingPromotion struct {
	Square Square `json:"square"`
	Player Player `json:"player"`
}

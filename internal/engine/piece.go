package engine

import "fmt"

type Player uint8

const (
	White Player = iota
	Black
)

// Direction is the row delta a pawn of this player advances by.
func (p Player) Direction() int {
	if p == White {
		return 1
	}
	return -1
}

func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

// startRow is the rank a pawn may double-step from.
func (p Player) startRow() int {
	if p == White {
		return 1
	}
	return 6
}

// lastRow is the rank a pawn promotes on.
func (p Player) lastRow() int {
	if p == White {
		return 7
	}
	return 0
}

func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*p = White
	case "black":
		*p = Black
	default:
		return fmt.Errorf("unknown player %q", text)
	}
	return nil
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	King
	Queen
	Rook
	Bishop
	Knight
)

var pieceTypeNames = map[PieceType]string{
	Pawn:   "pawn",
	King:   "king",
	Queen:  "queen",
	Rook:   "rook",
	Bishop: "bishop",
	Knight: "knight",
}

func (t PieceType) String() string {
	if name, ok := pieceTypeNames[t]; ok {
		return name
	}
	return "none"
}

// ParsePieceType accepts the lower-case names used on the wire ("queen") as well
// as the single-letter piece symbols ("Q", "q").
func ParsePieceType(s string) (PieceType, error) {
	for t, name := range pieceTypeNames {
		if s == name {
			return t, nil
		}
	}
	switch s {
	case "P", "p":
		return Pawn, nil
	case "K", "k":
		return King, nil
	case "Q", "q":
		return Queen, nil
	case "R", "r":
		return Rook, nil
	case "B", "b":
		return Bishop, nil
	case "N", "n":
		return Knight, nil
	}
	return NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPieceType, s)
}

func (t PieceType) MarshalText() ([]byte, error) {
	if t == NoPieceType {
		return nil, fmt.Errorf("%w: none", ErrInvalidPieceType)
	}
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// promotable reports whether a pawn may be replaced by a piece of this type.
func (t PieceType) promotable() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is a value; the zero Piece is an empty slot.
type Piece struct {
	Type  PieceType `json:"type"`
	Owner Player    `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Owner.String() + " " + p.Type.String()
}

package engine

import (
	"fmt"
	"strconv"
)

// Square indexes the board row-major from a1 (0) to h8 (63).
type Square int

func NewSquare(row, col int) (Square, error) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0, fmt.Errorf("%w: row %d col %d", ErrSquareOutOfRange, row, col)
	}
	return Square(row*8 + col), nil
}

// ParseSquare accepts algebraic coordinates ("e2") or a decimal index ("12").
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8' {
		return Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSquareOutOfRange, s)
	}
	sq := Square(n)
	if !sq.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrSquareOutOfRange, n)
	}
	return sq, nil
}

func (s Square) Valid() bool {
	return s >= 0 && s < 64
}

func (s Square) Row() int { return int(s) / 8 }
func (s Square) Col() int { return int(s) % 8 }

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrSquareOutOfRange, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func checkSquare(s Square) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrSquareOutOfRange, int(s))
	}
	return nil
}

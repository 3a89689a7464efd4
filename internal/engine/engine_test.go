package engine

import (
	"sort"
	"testing"
)

// setup builds a game from algebraic placements such as {"a1": wR}.
func setup(t *testing.T, turn Player, pieces map[string]Piece) *Game {
	t.Helper()
	var b Board
	for coord, p := range pieces {
		sq, err := ParseSquare(coord)
		if err != nil {
			t.Fatalf("ParseSquare(%q) error = %v", coord, err)
		}
		b[sq] = p
	}
	return NewGameFromBoard(b, turn)
}

func sq(t *testing.T, coord string) Square {
	t.Helper()
	s, err := ParseSquare(coord)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error = %v", coord, err)
	}
	return s
}

func destinations(moves []CandidateMove) []int {
	out := make([]int, 0, len(moves))
	for _, m := range moves {
		out = append(out, int(m.To))
	}
	sort.Ints(out)
	return out
}

func countKind(moves []CandidateMove, kind MoveKind) int {
	n := 0
	for _, m := range moves {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	wP = Piece{Type: Pawn, Owner: White}
	wN = Piece{Type: Knight, Owner: White}
	wB = Piece{Type: Bishop, Owner: White}
	wR = Piece{Type: Rook, Owner: White}
	wQ = Piece{Type: Queen, Owner: White}
	wK = Piece{Type: King, Owner: White}
	bP = Piece{Type: Pawn, Owner: Black}
	bN = Piece{Type: Knight, Owner: Black}
	bK = Piece{Type: King, Owner: Black}
)


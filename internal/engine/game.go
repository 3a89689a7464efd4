// Package engine holds chess board state, generates candidate moves and applies
// them, including pawn double-steps, en passant and promotion. A Game is not
// safe for concurrent use; callers serialize access.
package engine

import "fmt"

// State is the executor's turn state.
type State uint8

const (
	Idle State = iota
	AwaitingPromotion
)

func (s State) String() string {
	if s == AwaitingPromotion {
		return "awaitingPromotion"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "awaitingPromotion":
		*s = AwaitingPromotion
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

type Game struct {
	board     Board
	turn      Player
	enPassant *EnPassantMarker
	pending   *PendingPromotion
}

// NewGame returns a game in the standard starting position with White to move.
func NewGame() *Game {
	return &Game{board: NewBoard(), turn: White}
}

// NewGameFromBoard starts a game from an arbitrary position. No validity check is
// run on the placement.
func NewGameFromBoard(board Board, turn Player) *Game {
	return &Game{board: board, turn: turn}
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) PieceAt(sq Square) (Piece, bool, error) {
	if err := checkSquare(sq); err != nil {
		return Piece{}, false, err
	}
	p, ok := g.board.at(sq)
	return p, ok, nil
}

func (g *Game) CurrentPlayer() Player {
	return g.turn
}

func (g *Game) State() State {
	if g.pending != nil {
		return AwaitingPromotion
	}
	return Idle
}

// EnPassant returns the marker left by a two-square pawn advance on the previous
// move, if any.
func (g *Game) EnPassant() (EnPassantMarker, bool) {
	if g.enPassant == nil {
		return EnPassantMarker{}, false
	}
	return *g.enPassant, true
}

func (g *Game) Pending() (PendingPromotion, bool) {
	if g.pending == nil {
		return PendingPromotion{}, false
	}
	return *g.pending, true
}

// ApplyMove moves the piece on from to move.To. Only the destination of move is
// used; the kind reported is the one the generator attached to that destination.
// A pawn reaching its last rank returns Promotion and leaves the turn with the
// mover until Promote is called. On error the game is unchanged.
func (g *Game) ApplyMove(from Square, move CandidateMove) (MoveKind, error) {
	if err := checkSquare(from); err != nil {
		return 0, err
	}
	if err := checkSquare(move.To); err != nil {
		return 0, err
	}
	if g.pending != nil {
		return 0, fmt.Errorf("%w: %s must be promoted first", ErrPromotionPending, g.pending.Square)
	}
	piece, ok := g.board.at(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoPieceAtSquare, from)
	}

	candidates, err := g.CandidateMoves(from)
	if err != nil {
		return 0, err
	}
	matched, found := findDestination(candidates, move.To)
	if !found {
		return 0, fmt.Errorf("%w: %s %s to %s", ErrIllegalMove, piece, from, move.To)
	}

	g.board.clear(from)
	g.board.place(move.To, piece)

	if piece.Type == Pawn && move.To.Row() == piece.Owner.lastRow() {
		g.enPassant = nil
		g.pending = &PendingPromotion{Square: move.To, Player: piece.Owner}
		return Promotion, nil
	}

	g.enPassant = nil
	if piece.Type == Pawn && abs(move.To.Row()-from.Row()) == 2 {
		g.enPassant = &EnPassantMarker{Row: move.To.Row(), Col: move.To.Col()}
	}

	if matched.Kind == EnPassant {
		captured := move.To - Square(8*piece.Owner.Direction())
		g.board.clear(captured)
	}

	g.turn = g.turn.Opponent()
	return matched.Kind, nil
}

// Promote replaces the pawn waiting on sq with a piece of type t and passes the
// turn to the opponent.
func (g *Game) Promote(sq Square, t PieceType) error {
	if err := checkSquare(sq); err != nil {
		return err
	}
	if g.pending == nil {
		return fmt.Errorf("%w: no promotion pending", ErrIllegalPromotion)
	}
	if sq != g.pending.Square {
		return fmt.Errorf("%w: %s is waiting, not %s", ErrIllegalPromotion, g.pending.Square, sq)
	}
	piece, ok := g.board.at(sq)
	if !ok || piece.Type != Pawn {
		return fmt.Errorf("%w: no pawn on %s", ErrIllegalPromotion, sq)
	}
	if sq.Row() != g.pending.Player.lastRow() {
		return fmt.Errorf("%w: %s is not on the last rank", ErrIllegalPromotion, sq)
	}
	if !t.promotable() {
		return fmt.Errorf("%w: cannot promote to %s", ErrInvalidPieceType, t)
	}

	g.board.place(sq, Piece{Type: t, Owner: g.pending.Player})
	g.pending = nil
	g.turn = g.turn.Opponent()
	return nil
}

func findDestination(candidates []CandidateMove, to Square) (CandidateMove, bool) {
	for _, c := range candidates {
		if c.To == to {
			return c, true
		}
	}
	return CandidateMove{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

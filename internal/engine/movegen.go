package engine

import "fmt"

// ray is one sliding direction: the index delta of a single step and a guard
// telling whether a step from the given square stays on the board without
// wrapping onto another rank or file.
type ray struct {
	delta   int
	canStep func(Square) bool
}

var (
	north = ray{8, func(s Square) bool { return s.Row() < 7 }}
	south = ray{-8, func(s Square) bool { return s.Row() > 0 }}
	east  = ray{1, func(s Square) bool { return s.Col() < 7 }}
	west  = ray{-1, func(s Square) bool { return s.Col() > 0 }}

	northEast = ray{9, func(s Square) bool { return s.Row() < 7 && s.Col() < 7 }}
	northWest = ray{7, func(s Square) bool { return s.Row() < 7 && s.Col() > 0 }}
	southEast = ray{-7, func(s Square) bool { return s.Row() > 0 && s.Col() < 7 }}
	southWest = ray{-9, func(s Square) bool { return s.Row() > 0 && s.Col() > 0 }}

	orthogonals = []ray{north, south, east, west}
	diagonals   = []ray{northEast, northWest, southEast, southWest}
	allRays     = []ray{north, south, east, west, northEast, northWest, southEast, southWest}
)

// knightJump is a fixed knight offset and the source squares it is valid from.
type knightJump struct {
	delta int
	from  func(row, col int) bool
}

var knightJumps = []knightJump{
	{17, func(r, c int) bool { return r <= 5 && c <= 6 }},
	{15, func(r, c int) bool { return r <= 5 && c >= 1 }},
	{10, func(r, c int) bool { return r <= 6 && c <= 5 }},
	{6, func(r, c int) bool { return r <= 6 && c >= 2 }},
	{-6, func(r, c int) bool { return r >= 1 && c <= 5 }},
	{-10, func(r, c int) bool { return r >= 1 && c >= 2 }},
	{-15, func(r, c int) bool { return r >= 2 && c <= 6 }},
	{-17, func(r, c int) bool { return r >= 2 && c >= 1 }},
}

// CandidateMoves lists the destinations the piece on sq may move to. The piece
// must belong to the player to move. Moves are not filtered for king safety.
func (g *Game) CandidateMoves(sq Square) ([]CandidateMove, error) {
	if err := checkSquare(sq); err != nil {
		return nil, err
	}
	if g.pending != nil {
		return nil, fmt.Errorf("%w: %s must be promoted first", ErrPromotionPending, g.pending.Square)
	}
	piece, ok := g.board.at(sq)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPieceAtSquare, sq)
	}
	if piece.Owner != g.turn {
		return nil, fmt.Errorf("%w: %s on %s, %s to move", ErrWrongTurn, piece, sq, g.turn)
	}

	switch piece.Type {
	case Pawn:
		return g.pawnMoves(sq, piece.Owner), nil
	case Knight:
		return g.knightMoves(sq, piece.Owner), nil
	case Bishop:
		return g.slidingMoves(sq, piece.Owner, diagonals), nil
	case Rook:
		return g.slidingMoves(sq, piece.Owner, orthogonals), nil
	case Queen:
		return g.slidingMoves(sq, piece.Owner, allRays), nil
	case King:
		return g.kingMoves(sq, piece.Owner), nil
	default:
		return nil, fmt.Errorf("%w: %d on %s", ErrInvalidPieceType, piece.Type, sq)
	}
}

// classify returns the kind of a move by owner onto target, or false if the
// target holds a friendly piece.
func (g *Game) classify(target Square, owner Player) (MoveKind, bool) {
	occupant, occupied := g.board.at(target)
	switch {
	case !occupied:
		return Regular, true
	case occupant.Owner != owner:
		return Capture, true
	default:
		return Regular, false
	}
}

func (g *Game) slidingMoves(from Square, owner Player, rays []ray) []CandidateMove {
	moves := []CandidateMove{}
	for _, r := range rays {
		cur := from
		for r.canStep(cur) {
			cur += Square(r.delta)
			kind, ok := g.classify(cur, owner)
			if !ok {
				break
			}
			moves = append(moves, CandidateMove{To: cur, Kind: kind})
			if kind == Capture {
				break
			}
		}
	}
	return moves
}

func (g *Game) knightMoves(from Square, owner Player) []CandidateMove {
	moves := []CandidateMove{}
	for _, j := range knightJumps {
		if !j.from(from.Row(), from.Col()) {
			continue
		}
		target := from + Square(j.delta)
		if kind, ok := g.classify(target, owner); ok {
			moves = append(moves, CandidateMove{To: target, Kind: kind})
		}
	}
	return moves
}

func (g *Game) kingMoves(from Square, owner Player) []CandidateMove {
	moves := []CandidateMove{}
	for _, r := range allRays {
		if !r.canStep(from) {
			continue
		}
		target := from + Square(r.delta)
		if kind, ok := g.classify(target, owner); ok {
			moves = append(moves, CandidateMove{To: target, Kind: kind})
		}
	}
	return moves
}

func (g *Game) pawnMoves(from Square, owner Player) []CandidateMove {
	moves := []CandidateMove{}
	dir := owner.Direction()
	row, col := from.Row(), from.Col()
	aheadRow := row + dir
	// A pawn on its last rank is promoted before it can be selected again.
	if aheadRow < 0 || aheadRow > 7 {
		return moves
	}

	ahead := Square(aheadRow*8 + col)
	if _, occupied := g.board.at(ahead); !occupied {
		moves = append(moves, CandidateMove{To: ahead, Kind: Regular})
		if row == owner.startRow() {
			twoAhead := Square((row+2*dir)*8 + col)
			if _, occupied := g.board.at(twoAhead); !occupied {
				moves = append(moves, CandidateMove{To: twoAhead, Kind: Regular})
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		c := col + dc
		if c < 0 || c > 7 {
			continue
		}
		target := Square(aheadRow*8 + c)
		if occupant, occupied := g.board.at(target); occupied && occupant.Owner != owner {
			moves = append(moves, CandidateMove{To: target, Kind: Capture})
		}
	}

	if m := g.enPassant; m != nil && m.Row == row && (m.Col == col-1 || m.Col == col+1) {
		moves = append(moves, CandidateMove{To: Square((m.Row+dir)*8 + m.Col), Kind: EnPassant})
	}
	return moves
}

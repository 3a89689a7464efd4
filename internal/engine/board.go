package engine

// Board holds one optional piece per square. It is a value type: assigning a
// Board copies every slot.
type Board [64]Piece

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position with White on rows 0 and 1.
func NewBoard() Board {
	var b Board
	for col, t := range backRank {
		b[col] = Piece{Type: t, Owner: White}
		b[8+col] = Piece{Type: Pawn, Owner: White}
		b[48+col] = Piece{Type: Pawn, Owner: Black}
		b[56+col] = Piece{Type: t, Owner: Black}
	}
	return b
}

// at returns the piece on sq and whether the slot is occupied. sq must be in range;
// Game.PieceAt is the checked accessor.
func (b *Board) at(sq Square) (Piece, bool) {
	p := b[sq]
	return p, !p.IsEmpty()
}

func (b *Board) place(sq Square, p Piece) {
	b[sq] = p
}

func (b *Board) clear(sq Square) {
	b[sq] = Piece{}
}

package model

import "github.com/benbeisheim/chess-backend/internal/engine"

// ClientBoard is the 64-square board as sent to clients, index 0 = a1. Empty
// squares are null.
type ClientBoard [64]*engine.Piece

func newClientBoard(b engine.Board) ClientBoard {
	var out ClientBoard
	for i := range b {
		if b[i].IsEmpty() {
			continue
		}
		p := b[i]
		out[i] = &p
	}
	return out
}

type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Piece, 0),
		Black: make([]engine.Piece, 0),
	}
}

func (c *CapturedPieces) add(by engine.Player, p engine.Piece) {
	switch by {
	case engine.White:
		c.White = append(c.White, p)
	case engine.Black:
		c.Black = append(c.Black, p)
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]engine.Piece, 0, len(c.White)), c.White...),
		Black: append(make([]engine.Piece, 0, len(c.Black)), c.Black...),
	}
}

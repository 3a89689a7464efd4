package model

import "github.com/benbeisheim/chess-backend/internal/engine"

type WSMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

type WSPromotion struct {
	Square engine.Square    `json:"square"`
	Piece  engine.PieceType `json:"piece"`
}

type WSCandidatesRequest struct {
	Square engine.Square `json:"square"`
}

type Candidates struct {
	Square engine.Square          `json:"square"`
	Moves  []engine.CandidateMove `json:"moves"`
}

// Ply is one applied move. Promotion is filled in once the promoting player has
// chosen a piece.
type Ply struct {
	Piece         engine.Piece     `json:"piece"`
	From          engine.Square    `json:"from"`
	To            engine.Square    `json:"to"`
	Kind          engine.MoveKind  `json:"kind"`
	CapturedPiece *engine.Piece    `json:"capturedPiece"`
	Promotion     engine.PieceType `json:"promotion,omitempty"`
}

type SimpleMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}

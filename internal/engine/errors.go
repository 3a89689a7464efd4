package engine

import "errors"

var (
	ErrNoPieceAtSquare  = errors.New("no piece at square")
	ErrWrongTurn        = errors.New("piece does not belong to the player to move")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalPromotion = errors.New("illegal promotion")
	ErrSquareOutOfRange = errors.New("square out of range")
	ErrInvalidPieceType = errors.New("invalid piece type")
	ErrPromotionPending = errors.New("promotion pending")
)

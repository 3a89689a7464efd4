package model

import (
	"github.com/benbeisheim/chess-backend/internal/engine"
)

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(p engine.Player) PlayerColor {
	if p == engine.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

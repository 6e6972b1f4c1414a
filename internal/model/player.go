package model

import (
	"github.com/akibahmed229/chess-engine/internal/engine"
)

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// Player is a participant known to the matchmaking queue.
type Player struct {
	ID string
}

// ClientPlayer is the seat view sent to clients. TimeLeft is in tenths of
// a second.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

func colorName(c engine.Color) PlayerColor {
	if c == engine.Black {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

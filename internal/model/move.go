package model

import (
	"github.com/akibahmed229/chess-engine/internal/engine"
)

// MoveIntent is a client's request to move whatever sits on From to To.
// Squares use the engine's convention: row 0 is black's back rank, col 0
// the a-file.
type MoveIntent struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

// HistoryEntry is one committed ply as shown in the client's move log.
type HistoryEntry struct {
	Notation string        `json:"notation"`
	From     engine.Square `json:"from"`
	To       engine.Square `json:"to"`
	Moved    string        `json:"moved"`
	Captured string        `json:"captured,omitempty"`
}

func historyEntry(m engine.Move) HistoryEntry {
	e := HistoryEntry{
		Notation: m.Notation(),
		From:     m.From,
		To:       m.To,
		Moved:    m.Moved.Code(),
	}
	if m.IsCapture() {
		e.Captured = m.Captured.Code()
	}
	return e
}

// MatchFoundEvent notifies a queued player that a game is ready for them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}

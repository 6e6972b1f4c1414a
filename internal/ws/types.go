package ws

import (
	"encoding/json"
)

// MessageType identifies the kind of payload carried by a Message.
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeUndo       MessageType = "undo"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for every WebSocket frame, in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload carries a rejection back to the client that caused it.
type ErrorPayload struct {
	Message string `json:"message"`
}

package controller

import (
	"encoding/json"
	"fmt"

	"github.com/akibahmed229/chess-engine/internal/model"
	"github.com/akibahmed229/chess-engine/internal/service"
	"github.com/akibahmed229/chess-engine/internal/ws"
	"github.com/apex/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the read loop for one socket. Rejected messages
// are answered with an error frame to this socket only; accepted ones make
// the game broadcast its new state to everyone.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := log.WithFields(log.Fields{"game": gameID, "player": playerID})

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.WithError(err).Warn("register connection")
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("connection closed")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Warn("malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.WithError(err).WithField("type", string(msg.Type)).Warn("rejected message")
			wsc.gameService.SendError(gameID, playerID, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var intent model.MoveIntent
		if err := json.Unmarshal(msg.Payload, &intent); err != nil {
			return fmt.Errorf("bad move payload: %w", err)
		}
		return wsc.gameService.HandleMove(gameID, playerID, intent)

	case ws.MessageTypeUndo:
		return wsc.gameService.HandleUndo(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

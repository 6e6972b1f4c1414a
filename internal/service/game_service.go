package service

import (
	"fmt"

	"github.com/akibahmed229/chess-engine/internal/model"
	"github.com/akibahmed229/chess-engine/internal/store"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameService is the facade the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// CreateGameFromPosition creates a game starting from a FEN position.
func (gs *GameService) CreateGameFromPosition(fen string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGameFromFEN(gameID, fen); err != nil {
		return "", err
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.ClientState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID, playerID string, intent model.MoveIntent) error {
	return gs.gameManager.MakeMove(gameID, playerID, intent)
}

func (gs *GameService) HandleUndo(gameID, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) SendError(gameID, playerID, message string) {
	gs.gameManager.SendError(gameID, playerID, message)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) RecentGames(limit int) ([]store.GameRecord, error) {
	return gs.gameManager.RecentGames(limit)
}

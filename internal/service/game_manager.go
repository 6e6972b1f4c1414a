package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/akibahmed229/chess-engine/internal/model"
	"github.com/akibahmed229/chess-engine/internal/store"
	"github.com/apex/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ErrNoArchive is returned when archive queries run without a database.
var ErrNoArchive = errors.New("archive not configured")

// GameManager owns every live game, the matchmaking queue, and the
// per-player channels used to deliver match-found events.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex

	clock   time.Duration
	archive *store.Archive
}

// NewGameManager builds a manager. The archive may be nil, in which case
// finished games are not persisted. Matchmaking does not run until
// ProcessMatchmaking is started.
func NewGameManager(clock time.Duration, archive *store.Archive) *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		clock:            clock,
		archive:          archive,
	}
}

// ProcessMatchmaking pairs queued players once a second until ctx is done.
func (gm *GameManager) ProcessMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gm.matchWaiting()
		}
	}
}

// matchWaiting pairs the two longest-waiting players into a new game and
// notifies them on their registered channels. One pair per call.
func (gm *GameManager) matchWaiting() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.queue.Size() < 2 {
		return
	}
	player1, player2 := gm.queue.NextPair()

	gameID := uuid.New().String()
	game := gm.newGame(gameID)

	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.WithError(err).WithField("player", player1.ID).Error("seat matched player")
		return
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.WithError(err).WithField("player", player2.ID).Error("seat matched player")
		return
	}
	gm.games[gameID] = game

	log.WithFields(log.Fields{
		"game":  gameID,
		"white": player1.ID,
		"black": player2.ID,
	}).Info("matched players")

	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
}

// notifyMatch delivers a match-found event to the player's waiting channel,
// then retires the channel. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.WithField("player", playerID).Warn("matched player has no waiting channel")
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).WithField("player", playerID).Error("marshal match event")
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.WithField("player", playerID).Warn("match event dropped, channel not ready")
	}
}

// RegisterMatchmakingChannel installs the channel a waiting player listens
// on. A player re-registering replaces and closes their previous channel.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel removes a waiter's registration, but only if
// ch is the channel currently registered. A superseded waiter waking up on
// its closed channel must not evict the registration that replaced it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// The channel is not closed here; its creator owns its lifetime.
	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) newGame(gameID string) *model.Game {
	game := model.NewGame(gameID, gm.clock)
	if gm.archive != nil {
		game.SetResolveHook(gm.archiveGame)
	}
	return game
}

func (gm *GameManager) archiveGame(s model.Summary) {
	rec := &store.GameRecord{
		GameID:   s.GameID,
		White:    s.White,
		Black:    s.Black,
		Result:   s.Result,
		PlyCount: s.PlyCount,
		FinalFEN: s.FinalFEN,
		Moves:    s.Moves,
	}
	if err := gm.archive.Save(rec); err != nil {
		log.WithError(err).WithField("game", s.GameID).Error("archive finished game")
		return
	}
	log.WithFields(log.Fields{"game": s.GameID, "result": s.Result}).Info("archived finished game")
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = gm.newGame(gameID)
	return nil
}

// CreateGameFromFEN registers a game starting from an arbitrary position.
func (gm *GameManager) CreateGameFromFEN(gameID, fen string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	game, err := model.NewGameFromFEN(gameID, fen, gm.clock)
	if err != nil {
		return err
	}
	if gm.archive != nil {
		game.SetResolveHook(gm.archiveGame)
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.ClientState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, intent model.MoveIntent) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, intent)
}

func (gm *GameManager) Undo(gameID, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// SendError delivers a rejection to one player's socket in a game.
func (gm *GameManager) SendError(gameID, playerID, message string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.SendError(playerID, message)
}

// RecentGames lists archived games, newest first.
func (gm *GameManager) RecentGames(limit int) ([]store.GameRecord, error) {
	if gm.archive == nil {
		return nil, ErrNoArchive
	}
	return gm.archive.Recent(limit)
}

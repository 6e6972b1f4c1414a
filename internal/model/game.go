package model

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/akibahmed229/chess-engine/internal/engine"
	"github.com/akibahmed229/chess-engine/internal/ws"
	"github.com/apex/log"
	"github.com/gofiber/websocket/v2"
)

// GameConnections tracks the live sockets subscribed to a single game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Summary describes a finished game for archival.
type Summary struct {
	GameID   string
	White    string
	Black    string
	Result   string
	PlyCount int
	FinalFEN string
	Moves    string
}

// Game owns one live game: the rules state, the seats, the clocks, and the
// sockets watching it. Every rule decision is delegated to the engine; this
// type only enforces seating, turn ownership, and membership of the intent
// in the legal set computed after the previous commit or undo.
type Game struct {
	ID string

	mu      sync.Mutex
	eng     *engine.GameState
	legal   []engine.Move
	resolve string // "", "checkmate" or "stalemate"

	white ClientPlayer
	black ClientPlayer

	whiteClock *Clock
	blackClock *Clock

	connections *GameConnections
	onResolve   func(Summary)
}

// ClientState is the full game snapshot broadcast to connected clients.
type ClientState struct {
	Board       [8][8]string   `json:"board"`
	ToMove      PlayerColor    `json:"toMove"`
	MoveHistory []HistoryEntry `json:"moveHistory"`
	LegalMoves  []MoveIntent   `json:"legalMoves"`
	IsCheck     bool           `json:"isCheck"`
	Resolve     *string        `json:"resolve"`
	Players     Seats          `json:"players"`
	LastMove    *MoveIntent    `json:"lastMove"`
	FEN         string         `json:"fen"`
}

type Seats struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func NewGame(id string, clock time.Duration) *Game {
	g := &Game{
		ID:          id,
		eng:         engine.NewGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
	g.white = ClientPlayer{TimeLeft: deciseconds(clock)}
	g.black = ClientPlayer{TimeLeft: deciseconds(clock)}
	g.refreshLegal()
	return g
}

// NewGameFromFEN starts a game from an arbitrary position. A position that
// is already checkmate or stalemate comes back resolved.
func NewGameFromFEN(id, fen string, clock time.Duration) (*Game, error) {
	eng, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ID:          id,
		eng:         eng,
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
	g.white = ClientPlayer{TimeLeft: deciseconds(clock)}
	g.black = ClientPlayer{TimeLeft: deciseconds(clock)}
	g.refreshLegal()
	return g, nil
}

func deciseconds(d time.Duration) int {
	return int(d.Milliseconds() / 100)
}

// SetResolveHook installs a callback invoked once when a move ends the game.
func (g *Game) SetResolveHook(fn func(Summary)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onResolve = fn
}

// AddPlayer seats a player: first joiner white, second black. Joining a game
// you are already seated in returns your existing color.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case playerID != "" && g.white.ID == playerID:
		return PlayerColorWhite, nil
	case playerID != "" && g.black.ID == playerID:
		return PlayerColorBlack, nil
	case g.white.ID == "":
		g.white.ID = playerID
		g.white.Color = string(PlayerColorWhite)
		return PlayerColorWhite, nil
	case g.black.ID == "":
		g.black.ID = playerID
		g.black.Color = string(PlayerColorBlack)
		return PlayerColorBlack, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seatColor(playerID) != engine.NoColor
}

// seatColor reports which side playerID occupies. Callers hold g.mu.
func (g *Game) seatColor(playerID string) engine.Color {
	if playerID == "" {
		return engine.NoColor
	}
	switch playerID {
	case g.white.ID:
		return engine.White
	case g.black.ID:
		return engine.Black
	}
	return engine.NoColor
}

func (g *Game) canSpectate() bool {
	return g.white.ID == "" || g.black.ID == ""
}

// MakeMove commits a move intent. The intent must come from the seat that
// owns the side to move and must match, by move identifier, an entry in the
// current legal set. On any rejection the game state is untouched and only
// the submitter learns about it.
func (g *Game) MakeMove(playerID string, intent MoveIntent) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seatColor(playerID)
	if seat == engine.NoColor {
		return errors.New("player not in game")
	}
	if seat != g.eng.SideToMove() {
		return errors.New("not your turn")
	}
	if !intent.From.InBounds() || !intent.To.InBounds() {
		return errors.New("move out of bounds")
	}

	cand := g.eng.Candidate(intent.From, intent.To)
	if !g.isLegal(cand) {
		return errors.New("illegal move")
	}

	g.clockFor(seat).Stop()
	g.eng.MakeMove(cand)
	g.refreshLegal()
	if g.resolve == "" {
		g.clockFor(g.eng.SideToMove()).Start()
	}
	g.syncClocks()

	if g.resolve != "" && g.onResolve != nil {
		go g.onResolve(g.summary())
	}
	go g.broadcastState()
	return nil
}

// Undo rolls back one ply. Either seat may ask; rolling back the move that
// ended the game reopens it. Undo with no history is a no-op.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seatColor(playerID) == engine.NoColor {
		return errors.New("player not in game")
	}
	if _, ok := g.eng.LastMove(); !ok {
		return nil
	}

	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.eng.UndoMove()
	g.refreshLegal()
	g.clockFor(g.eng.SideToMove()).Start()
	g.syncClocks()

	go g.broadcastState()
	return nil
}

func (g *Game) isLegal(cand engine.Move) bool {
	for _, m := range g.legal {
		if m.Equal(cand) {
			return true
		}
	}
	return false
}

// refreshLegal recomputes the cached legal set and derives the resolve
// value from the engine's terminal flags. Callers hold g.mu.
func (g *Game) refreshLegal() {
	g.legal = g.eng.LegalMoves()
	switch {
	case g.eng.Checkmate():
		g.resolve = "checkmate"
	case g.eng.Stalemate():
		g.resolve = "stalemate"
	default:
		g.resolve = ""
	}
}

func (g *Game) clockFor(side engine.Color) *Clock {
	if side == engine.Black {
		return g.blackClock
	}
	return g.whiteClock
}

func (g *Game) syncClocks() {
	g.white.TimeLeft = deciseconds(g.whiteClock.GetTimeLeft())
	g.black.TimeLeft = deciseconds(g.blackClock.GetTimeLeft())
}

func (g *Game) summary() Summary {
	history := g.eng.History()
	notations := make([]string, 0, len(history))
	for _, m := range history {
		notations = append(notations, m.Notation())
	}
	return Summary{
		GameID:   g.ID,
		White:    g.white.ID,
		Black:    g.black.ID,
		Result:   g.resolve,
		PlyCount: len(notations),
		FinalFEN: g.eng.FEN(),
		Moves:    strings.Join(notations, " "),
	}
}

func (g *Game) GetState() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.clientState()
}

// clientState builds the broadcast snapshot. Callers hold g.mu.
func (g *Game) clientState() ClientState {
	board := g.eng.Board()
	state := ClientState{
		Board:   board.Codes(),
		ToMove:  colorName(g.eng.SideToMove()),
		IsCheck: g.eng.InCheck(),
		Players: Seats{White: g.white, Black: g.black},
		FEN:     g.eng.FEN(),
	}

	history := g.eng.History()
	state.MoveHistory = make([]HistoryEntry, 0, len(history))
	for _, m := range history {
		state.MoveHistory = append(state.MoveHistory, historyEntry(m))
	}

	state.LegalMoves = make([]MoveIntent, 0, len(g.legal))
	for _, m := range g.legal {
		state.LegalMoves = append(state.LegalMoves, MoveIntent{From: m.From, To: m.To})
	}

	if g.resolve != "" {
		resolve := g.resolve
		state.Resolve = &resolve
	}
	if last, ok := g.eng.LastMove(); ok {
		state.LastMove = &MoveIntent{From: last.From, To: last.To}
	}
	return state
}

// RegisterConnection subscribes a socket to this game's broadcasts. Players
// may always connect to their own game; anyone else may watch while a seat
// is still open. A player reconnecting over an existing socket keeps the old
// one and the new connection is closed.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	authorized := g.seatColor(playerID) != engine.NoColor || g.canSpectate()
	g.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	log.WithFields(log.Fields{"game": g.ID, "player": playerID}).Info("connection registered")

	go g.broadcastState()
	return nil
}

// UnregisterConnection removes a socket from the registry, but only if conn
// is the socket currently registered for playerID. The read loop of a
// rejected duplicate cleans up with its own closed socket and must not evict
// the live one.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if g.connections.connections[playerID] == conn {
		delete(g.connections.connections, playerID)
		log.WithFields(log.Fields{"game": g.ID, "player": playerID}).Info("connection unregistered")
	}
}

// SendError delivers a rejection frame to one player's socket. All socket
// writes go through the connections mutex, here and in broadcastState, so a
// single connection never has two concurrent writers.
func (g *Game) SendError(playerID, message string) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	conn, ok := g.connections.connections[playerID]
	if !ok {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.WithError(err).WithFields(log.Fields{"game": g.ID, "player": playerID}).Warn("dropping dead connection")
		conn.Close()
		delete(g.connections.connections, playerID)
	}
}

// broadcastState pushes the current snapshot to every subscribed socket.
// The connections mutex is held for the whole fan-out so writes to a single
// socket never interleave; connections that fail to accept the write are
// dropped.
func (g *Game) broadcastState() {
	g.mu.Lock()
	state := g.clientState()
	g.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.WithError(err).WithField("game", g.ID).Error("marshal game state")
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: payload,
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.WithError(err).WithFields(log.Fields{"game": g.ID, "player": playerID}).Warn("dropping dead connection")
			conn.Close()
			delete(g.connections.connections, playerID)
		}
	}
}

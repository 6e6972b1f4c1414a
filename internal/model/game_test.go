package model

import (
	"testing"
	"time"

	"github.com/akibahmed229/chess-engine/internal/engine"
	"github.com/gofiber/websocket/v2"
)

func parseSq(t *testing.T, s string) engine.Square {
	t.Helper()
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		t.Fatalf("bad square %q", s)
	}
	return engine.Sq(int('8'-s[1]), int(s[0]-'a'))
}

func intent(t *testing.T, move string) MoveIntent {
	t.Helper()
	if len(move) != 4 {
		t.Fatalf("bad move %q", move)
	}
	return MoveIntent{From: parseSq(t, move[:2]), To: parseSq(t, move[2:])}
}

func seatedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test-game", time.Minute)
	if color, err := g.AddPlayer("alice"); err != nil || color != PlayerColorWhite {
		t.Fatalf("AddPlayer(alice) = %v, %v", color, err)
	}
	if color, err := g.AddPlayer("bob"); err != nil || color != PlayerColorBlack {
		t.Fatalf("AddPlayer(bob) = %v, %v", color, err)
	}
	return g
}

func TestAddPlayerSeats(t *testing.T) {
	g := seatedGame(t)

	if _, err := g.AddPlayer("carol"); err == nil {
		t.Error("third player should not get a seat")
	}
	if color, err := g.AddPlayer("alice"); err != nil || color != PlayerColorWhite {
		t.Errorf("rejoining should return the existing seat, got %v, %v", color, err)
	}
	if !g.IsPlayerInGame("bob") || g.IsPlayerInGame("carol") {
		t.Error("seat membership is wrong")
	}
}

func TestMakeMoveRejections(t *testing.T) {
	g := seatedGame(t)

	tests := []struct {
		name   string
		player string
		intent MoveIntent
	}{
		{"opponent moving first", "bob", intent(t, "e7e5")},
		{"stranger", "carol", intent(t, "e2e4")},
		{"not in legal set", "alice", intent(t, "e2e5")},
		{"empty origin", "alice", intent(t, "e4e5")},
		{"out of bounds", "alice", MoveIntent{From: engine.Sq(-1, 0), To: engine.Sq(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.MakeMove(tt.player, tt.intent); err == nil {
				t.Error("move should have been rejected")
			}
		})
	}

	// Rejections must leave the game untouched.
	state := g.GetState()
	if state.ToMove != PlayerColorWhite || len(state.MoveHistory) != 0 {
		t.Errorf("state changed by rejected moves: toMove=%v history=%d", state.ToMove, len(state.MoveHistory))
	}
}

func TestMakeMoveCommits(t *testing.T) {
	g := seatedGame(t)

	if err := g.MakeMove("alice", intent(t, "e2e4")); err != nil {
		t.Fatalf("e2e4: %v", err)
	}

	state := g.GetState()
	if state.ToMove != PlayerColorBlack {
		t.Errorf("toMove = %v, want black", state.ToMove)
	}
	if state.Board[6][4] != "--" || state.Board[4][4] != "wp" {
		t.Errorf("board not updated: e2=%s e4=%s", state.Board[6][4], state.Board[4][4])
	}
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Notation != "e2e4" {
		t.Errorf("history = %+v, want one e2e4 entry", state.MoveHistory)
	}
	if state.LastMove == nil || state.LastMove.To != parseSq(t, "e4") {
		t.Errorf("lastMove = %+v, want e2e4", state.LastMove)
	}

	// White is no longer on move.
	if err := g.MakeMove("alice", intent(t, "d2d4")); err == nil {
		t.Error("white moved twice in a row")
	}
	if err := g.MakeMove("bob", intent(t, "e7e5")); err != nil {
		t.Errorf("e7e5: %v", err)
	}
}

func TestFoolsMateResolvesAndUndoReopens(t *testing.T) {
	g := seatedGame(t)

	moves := []struct {
		player string
		mv     string
	}{
		{"alice", "f2f3"},
		{"bob", "e7e5"},
		{"alice", "g2g4"},
		{"bob", "d8h4"},
	}
	for _, m := range moves {
		if err := g.MakeMove(m.player, intent(t, m.mv)); err != nil {
			t.Fatalf("%s %s: %v", m.player, m.mv, err)
		}
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Fatalf("resolve = %v, want checkmate", state.Resolve)
	}
	if !state.IsCheck || len(state.LegalMoves) != 0 {
		t.Errorf("mated position: isCheck=%v legalMoves=%d", state.IsCheck, len(state.LegalMoves))
	}

	// White is to move but has nothing legal to play.
	if err := g.MakeMove("alice", intent(t, "a2a3")); err == nil {
		t.Error("moves should be impossible after checkmate")
	}

	// Either seat may roll back the mating move, which reopens the game.
	if err := g.Undo("bob"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	state = g.GetState()
	if state.Resolve != nil {
		t.Errorf("resolve = %v after undo, want nil", *state.Resolve)
	}
	if state.ToMove != PlayerColorBlack || len(state.LegalMoves) == 0 {
		t.Errorf("after undo: toMove=%v legalMoves=%d", state.ToMove, len(state.LegalMoves))
	}
}

func TestUndoGuards(t *testing.T) {
	g := seatedGame(t)

	if err := g.Undo("carol"); err == nil {
		t.Error("stranger should not be able to undo")
	}
	if err := g.Undo("alice"); err != nil {
		t.Errorf("undo with no history should be a quiet no-op, got %v", err)
	}
	if state := g.GetState(); len(state.MoveHistory) != 0 || state.ToMove != PlayerColorWhite {
		t.Error("empty undo changed the game")
	}
}

func TestGameFromPosition(t *testing.T) {
	g, err := NewGameFromFEN("drawn", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", time.Minute)
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "stalemate" {
		t.Errorf("resolve = %v, want stalemate", state.Resolve)
	}
	if len(state.LegalMoves) != 0 {
		t.Errorf("legal moves = %d, want 0", len(state.LegalMoves))
	}

	if _, err := NewGameFromFEN("bad", "not a position", time.Minute); err == nil {
		t.Error("invalid position should be rejected")
	}
}

func TestClientStateSnapshot(t *testing.T) {
	g := seatedGame(t)
	state := g.GetState()

	if state.Board[7][4] != "wK" || state.Board[0][4] != "bK" || state.Board[3][3] != "--" {
		t.Errorf("board codes wrong: e1=%s e8=%s d5=%s", state.Board[7][4], state.Board[0][4], state.Board[3][3])
	}
	if state.FEN != engine.StartFEN {
		t.Errorf("fen = %q, want start position", state.FEN)
	}
	if len(state.LegalMoves) != 20 {
		t.Errorf("legal moves = %d, want 20", len(state.LegalMoves))
	}
	if state.Players.White.ID != "alice" || state.Players.Black.ID != "bob" {
		t.Errorf("seats = %+v", state.Players)
	}
	if state.IsCheck || state.Resolve != nil || state.LastMove != nil {
		t.Error("fresh game should have no check, resolve, or last move")
	}
}

func TestResolveHookSummary(t *testing.T) {
	g := seatedGame(t)
	done := make(chan Summary, 1)
	g.SetResolveHook(func(s Summary) { done <- s })

	for _, m := range []struct {
		player string
		mv     string
	}{
		{"alice", "f2f3"}, {"bob", "e7e5"}, {"alice", "g2g4"}, {"bob", "d8h4"},
	} {
		if err := g.MakeMove(m.player, intent(t, m.mv)); err != nil {
			t.Fatalf("%s %s: %v", m.player, m.mv, err)
		}
	}

	select {
	case s := <-done:
		if s.GameID != "test-game" || s.White != "alice" || s.Black != "bob" {
			t.Errorf("summary identity wrong: %+v", s)
		}
		if s.Result != "checkmate" || s.PlyCount != 4 {
			t.Errorf("summary outcome wrong: result=%s plies=%d", s.Result, s.PlyCount)
		}
		if s.Moves != "f2f3 e7e5 g2g4 d8h4" {
			t.Errorf("summary moves = %q", s.Moves)
		}
		want := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1"
		if s.FinalFEN != want {
			t.Errorf("summary fen = %q, want %q", s.FinalFEN, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("resolve hook was not called")
	}
}

func TestUnregisterConnectionKeepsLiveSocket(t *testing.T) {
	g := seatedGame(t)
	live := &websocket.Conn{}
	stale := &websocket.Conn{}
	g.connections.connections["alice"] = live

	// A rejected duplicate cleans up with its own socket; the registered one
	// must stay.
	g.UnregisterConnection("alice", stale)
	if g.connections.connections["alice"] != live {
		t.Error("stale cleanup evicted the live socket")
	}

	g.UnregisterConnection("alice", live)
	if _, ok := g.connections.connections["alice"]; ok {
		t.Error("own socket should unregister")
	}
}

func TestSendErrorWithoutConnection(t *testing.T) {
	g := seatedGame(t)

	// No socket registered for the player: nothing to write, registry
	// untouched.
	g.SendError("alice", "not your turn")
	if n := len(g.connections.connections); n != 0 {
		t.Errorf("registry grew to %d entries", n)
	}
}

package engine

import "testing"

// parseSquare turns "e2" into its row/col coordinates for test setup.
func parseSquare(t *testing.T, s string) Square {
	t.Helper()
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		t.Fatalf("bad square %q", s)
	}
	return Sq(int('8'-s[1]), int(s[0]-'a'))
}

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{Sq(7, 4), "e1"},
		{Sq(0, 0), "a8"},
		{Sq(7, 0), "a1"},
		{Sq(0, 7), "h8"},
		{Sq(4, 4), "e4"},
	}
	for _, tt := range tests {
		if got := tt.sq.Notation(); got != tt.want {
			t.Errorf("Notation(%d,%d) = %q, want %q", tt.sq.Row, tt.sq.Col, got, tt.want)
		}
	}
}

func TestMoveID(t *testing.T) {
	b := NewBoard()
	m := NewMove(Sq(6, 4), Sq(4, 4), &b)
	if got := m.ID(); got != 6444 {
		t.Errorf("ID() = %d, want 6444", got)
	}
	if got := m.Notation(); got != "e2e4" {
		t.Errorf("Notation() = %q, want e2e4", got)
	}
}

func TestMoveEqualityIgnoresBoardSnapshot(t *testing.T) {
	start := NewBoard()
	onStart := NewMove(Sq(6, 4), Sq(4, 4), &start)

	// Same coordinates against a nearly empty board: different Moved and
	// Captured snapshots, still the same move.
	g, err := NewGameFromFEN("7k/8/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	bare := g.Board()
	onBare := NewMove(Sq(6, 4), Sq(4, 4), &bare)

	if onStart.Moved == onBare.Moved {
		t.Fatal("test setup broken: snapshots should differ between boards")
	}
	if !onStart.Equal(onBare) {
		t.Error("moves with identical coordinates must compare equal across board snapshots")
	}
}

func TestMoveInequalityPerCoordinate(t *testing.T) {
	b := NewBoard()
	base := NewMove(Sq(6, 4), Sq(4, 4), &b)
	tests := []struct {
		name string
		m    Move
	}{
		{"startRow", NewMove(Sq(5, 4), Sq(4, 4), &b)},
		{"startCol", NewMove(Sq(6, 3), Sq(4, 4), &b)},
		{"endRow", NewMove(Sq(6, 4), Sq(5, 4), &b)},
		{"endCol", NewMove(Sq(6, 4), Sq(4, 5), &b)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if base.Equal(tt.m) {
				t.Errorf("%s differs but moves compare equal", tt.name)
			}
		})
	}
}

func TestMoveSnapshots(t *testing.T) {
	b := NewBoard()
	// Knight to a square occupied by nothing, then a fabricated capture.
	quiet := NewMove(Sq(7, 1), Sq(5, 2), &b)
	if quiet.Moved != (Piece{Color: White, Kind: Knight}) {
		t.Errorf("Moved = %v, want white knight", quiet.Moved)
	}
	if !quiet.Captured.IsEmpty() || quiet.IsCapture() {
		t.Errorf("quiet move should not be a capture, got %v", quiet.Captured)
	}

	g, err := NewGameFromFEN("7k/8/8/3p4/4B3/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	pos := g.Board()
	take := NewMove(Sq(4, 4), Sq(3, 3), &pos)
	if !take.IsCapture() {
		t.Error("bishop onto enemy pawn should snapshot a capture")
	}
	if take.Captured != (Piece{Color: Black, Kind: Pawn}) {
		t.Errorf("Captured = %v, want black pawn", take.Captured)
	}
}

package engine

// GameState is the aggregate root of one game: the board, the side to move,
// the move history, the two king squares, and the terminal flags. All state
// changes funnel through MakeMove and UndoMove so that history and king
// locations stay consistent with the board.
//
// A GameState is not safe for concurrent use. LegalMoves mutates and reverts
// the board internally while simulating candidates, so even read access from
// another goroutine needs external synchronization.
type GameState struct {
	board      Board
	sideToMove Color
	history    []Move
	whiteKing  Square
	blackKing  Square
	checkmate  bool
	stalemate  bool
}

// NewGameState returns a game at the standard starting position, white to move.
func NewGameState() *GameState {
	return &GameState{
		board:      NewBoard(),
		sideToMove: White,
		whiteKing:  Sq(7, 4),
		blackKing:  Sq(0, 4),
	}
}

// Board returns a copy of the current position. Mutating the copy has no
// effect on the game.
func (g *GameState) Board() Board {
	return g.board
}

// At returns the piece on sq.
func (g *GameState) At(sq Square) Piece {
	return g.board.At(sq)
}

// SideToMove returns whose turn it is.
func (g *GameState) SideToMove() Color {
	return g.sideToMove
}

// Checkmate reports whether the last LegalMoves call found the side to move
// checkmated. It is recomputed by LegalMoves, never set directly.
func (g *GameState) Checkmate() bool {
	return g.checkmate
}

// Stalemate reports whether the last LegalMoves call found the side to move
// stalemated.
func (g *GameState) Stalemate() bool {
	return g.stalemate
}

// History returns a copy of the committed moves, oldest first.
func (g *GameState) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recently committed move, if any.
func (g *GameState) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Candidate builds a Move from two squares against the current board. Use it
// to turn a user's (from, to) intent into a value that can be tested for
// membership in the legal set and then committed.
func (g *GameState) Candidate(from, to Square) Move {
	return NewMove(from, to, &g.board)
}

// MakeMove applies m: the origin empties, the destination takes the moved
// piece, the move is logged, and the turn flips. If a king moved, its
// tracked square follows it. No legality check happens here; callers commit
// only moves drawn from the current legal set.
func (g *GameState) MakeMove(m Move) {
	g.board[m.From.Row][m.From.Col] = Piece{}
	g.board[m.To.Row][m.To.Col] = m.Moved
	g.history = append(g.history, m)
	g.sideToMove = g.sideToMove.Opponent()
	if m.Moved.Kind == King {
		switch m.Moved.Color {
		case White:
			g.whiteKing = m.To
		case Black:
			g.blackKing = m.To
		}
	}
}

// UndoMove reverts the most recent move: the moved piece returns to its
// origin, the captured piece (or empty cell) returns to the destination, and
// the turn flips back. With no history it is a no-op. Repeated undos drain
// the game back to the initial position.
func (g *GameState) UndoMove() {
	if len(g.history) == 0 {
		return
	}
	m := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board[m.From.Row][m.From.Col] = m.Moved
	g.board[m.To.Row][m.To.Col] = m.Captured
	g.sideToMove = g.sideToMove.Opponent()
	if m.Moved.Kind == King {
		switch m.Moved.Color {
		case White:
			g.whiteKing = m.From
		case Black:
			g.blackKing = m.From
		}
	}
}

func (g *GameState) kingSquare(side Color) Square {
	if side == White {
		return g.whiteKing
	}
	return g.blackKing
}

// inCheckOf reports whether side's own king square is attacked by the other
// side, regardless of whose turn it is.
func (g *GameState) inCheckOf(side Color) bool {
	return g.board.SquareAttacked(g.kingSquare(side), side.Opponent())
}

// InCheck reports whether the side to move is in check.
func (g *GameState) InCheck() bool {
	return g.inCheckOf(g.sideToMove)
}

// SquareUnderAttack reports whether the opponent of the side to move has a
// pseudo-legal move ending on sq.
func (g *GameState) SquareUnderAttack(sq Square) bool {
	return g.board.SquareAttacked(sq, g.sideToMove.Opponent())
}

// PseudoLegalMoves returns every pseudo-legal move for the side to move in
// board-scan order.
func (g *GameState) PseudoLegalMoves() []Move {
	return g.board.PseudoLegalMoves(g.sideToMove, nil)
}

// LegalMoves returns the moves the side to move can actually play. Each
// pseudo-legal candidate is applied, the mover's king is tested for exposure,
// and the move is reverted; candidates that leave the king attacked are
// dropped. Order follows PseudoLegalMoves.
//
// As a side effect the terminal flags are recomputed: checkmate when the
// result is empty with the side to move in check, stalemate when it is empty
// without check, both clear otherwise.
func (g *GameState) LegalMoves() []Move {
	mover := g.sideToMove
	moves := g.PseudoLegalMoves()
	legal := moves[:0]
	for _, m := range moves {
		g.MakeMove(m)
		if !g.inCheckOf(mover) {
			legal = append(legal, m)
		}
		g.UndoMove()
	}
	if len(legal) == 0 {
		inCheck := g.InCheck()
		g.checkmate = inCheck
		g.stalemate = !inCheck
	} else {
		g.checkmate = false
		g.stalemate = false
	}
	return legal
}

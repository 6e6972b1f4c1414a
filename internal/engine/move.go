package engine

// Move describes a single ply: where a piece left from, where it landed, and
// snapshots of the piece that moved and the piece (if any) that stood on the
// destination. Moves are immutable once constructed; MakeMove and UndoMove
// read them but never change them.
//
// The snapshots are taken from the board the move is constructed against, so
// callers must build a Move before applying it.
type Move struct {
	From     Square
	To       Square
	Moved    Piece
	Captured Piece
}

// NewMove snapshots the origin and destination cells of b. Both squares must
// be in bounds; the board must be in its pre-move state.
func NewMove(from, to Square, b *Board) Move {
	return Move{
		From:     from,
		To:       to,
		Moved:    b.At(from),
		Captured: b.At(to),
	}
}

// ID encodes the four coordinates into a single decimal number,
// startRow*1000 + startCol*100 + endRow*10 + endCol. Each coordinate is one
// digit, so the encoding is unique per square pair and is the sole basis for
// move equality.
func (m Move) ID() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

// Equal reports whether both moves cover the same square pair. The piece
// snapshots deliberately do not participate: in this rule set the four
// coordinates fully determine a move, so two candidates built against
// different board states still compare equal.
func (m Move) Equal(o Move) bool {
	return m.ID() == o.ID()
}

// IsCapture reports whether the destination held an enemy piece when the
// move was constructed.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// Notation returns the move as simple square concatenation, e.g. "e2e4".
func (m Move) Notation() string {
	return m.From.Notation() + m.To.Notation()
}

func (m Move) String() string {
	return m.Notation()
}

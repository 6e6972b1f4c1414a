package engine

// Color identifies the side a piece belongs to. The zero value means
// "no color" and only ever appears on empty cells.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Opponent returns the other side. NoColor is its own opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

// Kind is the closed set of piece kinds. The zero value marks an empty cell,
// so a Piece zero value is "no piece here".
type Kind uint8

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// letter is the kind's letter inside a two-character cell code: lowercase "p"
// for pawns, uppercase for everything else.
func (k Kind) letter() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return "-"
}

// Piece is the content of one board cell. Color and kind are independently
// queryable; the zero value is an empty cell.
type Piece struct {
	Color Color
	Kind  Kind
}

func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Code renders the piece as the two-character cell code used for display and
// serialization: "--" for empty, otherwise color letter + kind letter,
// e.g. "wp" or "bK".
func (p Piece) Code() string {
	if p.IsEmpty() {
		return "--"
	}
	color := "w"
	if p.Color == Black {
		color = "b"
	}
	return color + p.Kind.letter()
}

func (p Piece) String() string {
	return p.Code()
}

package engine

import "strings"

// Square addresses one board cell. Row 0 is black's back rank (rank 8),
// row 7 is white's back rank (rank 1), col 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Sq is shorthand for building a Square from row-major coordinates.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// InBounds reports whether the square lies on the 8x8 board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// Notation returns the square in file-letter + rank-digit form:
// (7,4) is "e1", (0,0) is "a8".
func (s Square) Notation() string {
	return string([]byte{byte('a' + s.Col), byte('8' - s.Row)})
}

func (s Square) String() string {
	return s.Notation()
}

// Board is the 8x8 grid of cells. It is a plain value: copying a Board copies
// the whole position. Only GameState.MakeMove and GameState.UndoMove mutate a
// live board; everything else reads it.
type Board [8][8]Piece

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range back {
		b[0][col] = Piece{Color: Black, Kind: kind}
		b[7][col] = Piece{Color: White, Kind: kind}
	}
	for col := 0; col < 8; col++ {
		b[1][col] = Piece{Color: Black, Kind: Pawn}
		b[6][col] = Piece{Color: White, Kind: Pawn}
	}
	return b
}

// At returns the piece on sq. The caller must pass an in-bounds square.
func (b *Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

// Codes returns the board as two-character cell codes, row 0 first, for
// rendering and serialization.
func (b *Board) Codes() [8][8]string {
	var codes [8][8]string
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			codes[r][c] = b[r][c].Code()
		}
	}
	return codes
}

// String renders the board as an 8-line grid of cell codes, black's back rank
// on top, for logs and test output.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b[r][c].Code())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

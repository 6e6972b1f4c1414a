package engine

import (
	"fmt"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// NewGameFromFEN builds a game from the piece-placement and side-to-move
// fields of a FEN string. Castling rights, the en-passant square, and the
// move clocks describe rules this engine does not implement, so any trailing
// fields are accepted and ignored. Each side must have exactly one king;
// king tracking needs a square to start from.
func NewGameFromFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("fen %q: need piece placement and side to move", fen)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}

	g := &GameState{}
	whiteKings, blackKings := 0, 0
	for r, rank := range ranks {
		c := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			p, ok := pieceFromFEN(ch)
			if !ok {
				return nil, fmt.Errorf("fen %q: bad piece char %q in rank %d", fen, ch, r)
			}
			if c > 7 {
				return nil, fmt.Errorf("fen %q: rank %d overflows 8 files", fen, r)
			}
			g.board[r][c] = p
			if p.Kind == King {
				if p.Color == White {
					whiteKings++
					g.whiteKing = Sq(r, c)
				} else {
					blackKings++
					g.blackKing = Sq(r, c)
				}
			}
			c++
		}
		if c != 8 {
			return nil, fmt.Errorf("fen %q: rank %d covers %d files, want 8", fen, r, c)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("fen %q: want one king per side, got %d white / %d black", fen, whiteKings, blackKings)
	}

	switch fields[1] {
	case "w":
		g.sideToMove = White
	case "b":
		g.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	return g, nil
}

// FEN renders the position's piece placement and side to move. The fields
// this engine does not track come out as "- - 0 1" placeholders so that
// standard tools can still parse the string.
func (g *GameState) FEN() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		blanks := 0
		for c := 0; c < 8; c++ {
			p := g.board[r][c]
			if p.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteByte(byte('0' + blanks))
				blanks = 0
			}
			sb.WriteByte(p.fenLetter())
		}
		if blanks > 0 {
			sb.WriteByte(byte('0' + blanks))
		}
	}
	side := "w"
	if g.sideToMove == Black {
		side = "b"
	}
	return sb.String() + " " + side + " - - 0 1"
}

func pieceFromFEN(ch byte) (Piece, bool) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else if ch >= 'A' && ch <= 'Z' {
		lower = ch - 'A' + 'a'
	} else {
		return Piece{}, false
	}
	var kind Kind
	switch lower {
	case 'p':
		kind = Pawn
	case 'n':
		kind = Knight
	case 'b':
		kind = Bishop
	case 'r':
		kind = Rook
	case 'q':
		kind = Queen
	case 'k':
		kind = King
	default:
		return Piece{}, false
	}
	return Piece{Color: color, Kind: kind}, true
}

func (p Piece) fenLetter() byte {
	var ch byte
	switch p.Kind {
	case Pawn:
		ch = 'p'
	case Knight:
		ch = 'n'
	case Bishop:
		ch = 'b'
	case Rook:
		ch = 'r'
	case Queen:
		ch = 'q'
	case King:
		ch = 'k'
	default:
		return '?'
	}
	if p.Color == White {
		ch = ch - 'a' + 'A'
	}
	return ch
}

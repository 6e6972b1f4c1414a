package engine

type delta struct {
	dr, dc int
}

// Direction and offset tables. Their order is load-bearing: moves come out of
// generation in table order, and callers observe that order.
var (
	rookDirs    = [4]delta{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	bishopDirs  = [4]delta{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJumps = [8]delta{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps   = [8]delta{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// pawnMoves appends the pawn's pseudo-legal moves: a single advance onto an
// empty square, a double advance from the starting rank when both squares are
// empty, and diagonal captures onto enemy-occupied squares only. A pawn that
// has reached the last rank stays a pawn and generates nothing.
func (b *Board) pawnMoves(side Color, from Square, acc []Move) []Move {
	dir, startRow := -1, 6
	if side == Black {
		dir, startRow = 1, 1
	}
	one := Sq(from.Row+dir, from.Col)
	if one.InBounds() && b.At(one).IsEmpty() {
		acc = append(acc, NewMove(from, one, b))
		if two := Sq(from.Row+2*dir, from.Col); from.Row == startRow && b.At(two).IsEmpty() {
			acc = append(acc, NewMove(from, two, b))
		}
	}
	for _, dc := range [2]int{-1, 1} {
		diag := Sq(from.Row+dir, from.Col+dc)
		if diag.InBounds() && b.At(diag).Color == side.Opponent() {
			acc = append(acc, NewMove(from, diag, b))
		}
	}
	return acc
}

func (b *Board) knightMoves(side Color, from Square, acc []Move) []Move {
	for _, d := range knightJumps {
		to := Sq(from.Row+d.dr, from.Col+d.dc)
		if to.InBounds() && b.At(to).Color != side {
			acc = append(acc, NewMove(from, to, b))
		}
	}
	return acc
}

// slideMoves scans outward from the square one step at a time in each
// direction. An empty square is a destination and the scan continues; an
// enemy square is a destination and the scan stops; a friendly square stops
// the scan without being included.
func (b *Board) slideMoves(side Color, from Square, dirs [4]delta, acc []Move) []Move {
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			to := Sq(from.Row+d.dr*i, from.Col+d.dc*i)
			if !to.InBounds() {
				break
			}
			target := b.At(to)
			if target.IsEmpty() {
				acc = append(acc, NewMove(from, to, b))
				continue
			}
			if target.Color == side.Opponent() {
				acc = append(acc, NewMove(from, to, b))
			}
			break
		}
	}
	return acc
}

// queenMoves delegates to the rook scan and then the bishop scan.
func (b *Board) queenMoves(side Color, from Square, acc []Move) []Move {
	acc = b.slideMoves(side, from, rookDirs, acc)
	return b.slideMoves(side, from, bishopDirs, acc)
}

func (b *Board) kingMoves(side Color, from Square, acc []Move) []Move {
	for _, d := range kingSteps {
		to := Sq(from.Row+d.dr, from.Col+d.dc)
		if to.InBounds() && b.At(to).Color != side {
			acc = append(acc, NewMove(from, to, b))
		}
	}
	return acc
}

// movesFrom dispatches on the kind of the piece occupying from. The switch
// covers every Kind variant, so adding a piece kind without a generator is a
// visible gap here rather than a silent fallthrough at runtime.
func (b *Board) movesFrom(side Color, from Square, acc []Move) []Move {
	switch b.At(from).Kind {
	case Pawn:
		return b.pawnMoves(side, from, acc)
	case Knight:
		return b.knightMoves(side, from, acc)
	case Bishop:
		return b.slideMoves(side, from, bishopDirs, acc)
	case Rook:
		return b.slideMoves(side, from, rookDirs, acc)
	case Queen:
		return b.queenMoves(side, from, acc)
	case King:
		return b.kingMoves(side, from, acc)
	case Empty:
		return acc
	}
	return acc
}

// PseudoLegalMoves appends every pseudo-legal move for side to acc and
// returns it. The board is scanned row-major, column-major, so the result
// order is deterministic. Pass nil for a fresh slice.
//
// Pseudo-legal means consistent with piece movement and occupancy; whether a
// move leaves the mover's own king attacked is not considered here.
func (b *Board) PseudoLegalMoves(side Color, acc []Move) []Move {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if b[r][c].Color == side {
				acc = b.movesFrom(side, Sq(r, c), acc)
			}
		}
	}
	return acc
}

// SquareAttacked reports whether any pseudo-legal move of `by` ends on sq.
// It reuses full move generation rather than a dedicated attack map; the
// cost is quadratic in practice but the answer is exact by construction.
func (b *Board) SquareAttacked(sq Square, by Color) bool {
	for _, m := range b.PseudoLegalMoves(by, nil) {
		if m.To == sq {
			return true
		}
	}
	return false
}

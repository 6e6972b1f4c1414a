package main

import (
	"flag"
	"math/rand"

	"github.com/akibahmed229/chess-engine/internal/engine"
	"github.com/apex/log"
	"github.com/montanaflynn/stats"
)

// simulate plays random legal games against the engine and reports length
// and branching statistics. After every game the move history is unwound
// to verify that undo restores the exact starting position.
func main() {
	games := flag.Int("games", 100, "number of games to play")
	maxPlies := flag.Int("max-plies", 300, "abort a game after this many plies")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	var (
		plyCounts  []int
		branching  []int
		checkmates int
		stalemates int
		aborted    int
		undoFaults int
	)

	for i := 0; i < *games; i++ {
		g := engine.NewGameState()
		start := g.FEN()

		plies := 0
		for plies < *maxPlies {
			legal := g.LegalMoves()
			if len(legal) == 0 {
				break
			}
			branching = append(branching, len(legal))
			g.MakeMove(legal[rng.Intn(len(legal))])
			plies++
		}
		plyCounts = append(plyCounts, plies)

		switch {
		case g.Checkmate():
			checkmates++
		case g.Stalemate():
			stalemates++
		default:
			aborted++
		}

		for range g.History() {
			g.UndoMove()
		}
		if g.FEN() != start {
			undoFaults++
			log.WithField("game", i).Error("undo drain did not restore the starting position")
		}
	}

	lengths := stats.LoadRawData(plyCounts)
	branches := stats.LoadRawData(branching)

	meanLen, _ := lengths.Mean()
	medianLen, _ := lengths.Median()
	p90Len, _ := stats.Percentile(lengths, 90)
	meanBranch, _ := branches.Mean()
	maxBranch, _ := branches.Max()

	log.WithFields(log.Fields{
		"games":       *games,
		"checkmates":  checkmates,
		"stalemates":  stalemates,
		"aborted":     aborted,
		"undo_faults": undoFaults,
	}).Info("self-play finished")
	log.WithFields(log.Fields{
		"mean":   meanLen,
		"median": medianLen,
		"p90":    p90Len,
	}).Info("game length (plies)")
	log.WithFields(log.Fields{
		"mean": meanBranch,
		"max":  maxBranch,
	}).Info("branching factor")
}

package store

import (
	"fmt"
	"os"
	"testing"
	"time"
)

// The round trip needs a live Postgres; point CHESS_ARCHIVE_TEST_DSN at one
// to run it.
func TestArchiveRoundTrip(t *testing.T) {
	dsn := os.Getenv("CHESS_ARCHIVE_TEST_DSN")
	if dsn == "" {
		t.Skip("CHESS_ARCHIVE_TEST_DSN not set")
	}

	archive, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	gameID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	rec := &GameRecord{
		GameID:   gameID,
		White:    "alice",
		Black:    "bob",
		Result:   "checkmate",
		PlyCount: 4,
		FinalFEN: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1",
		Moves:    "f2f3 e7e5 g2g4 d8h4",
	}
	if err := archive.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	recs, err := archive.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	for _, r := range recs {
		if r.GameID == gameID {
			if r.Result != "checkmate" || r.PlyCount != 4 || r.Moves != rec.Moves {
				t.Errorf("stored record differs: %+v", r)
			}
			return
		}
	}
	t.Errorf("saved record %s not in the latest %d", gameID, 10)
}

package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chessplay-opponent/internal/board"
	"github.com/hailam/chessplay-opponent/internal/engine"
)

func TestHashStoreSaveLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "chessplay-hash-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "hash.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	move := board.NewMove(board.E2, board.E4)
	snapshot := map[uint64]engine.TTEntry{
		0x1111111111111111: {BestMove: move, Score: 42, Depth: 6, Flag: engine.TTExact, Age: 3},
		0x2222222222222222: {BestMove: board.NoMove, Score: -10, Depth: 1, Flag: engine.TTUpperBound, Age: 1},
	}

	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(snapshot) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(snapshot))
	}
	for key, want := range snapshot {
		got, ok := loaded[key]
		if !ok {
			t.Errorf("missing record for key %#x", key)
			continue
		}
		if got != want {
			t.Errorf("record mismatch for key %#x: got %+v, want %+v", key, got, want)
		}
	}
}

func TestHashStorePersistsAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "chessplay-hash-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "hash.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	snapshot := map[uint64]engine.TTEntry{
		0xABCDEF: {BestMove: board.NewMove(board.D2, board.D4), Score: 7, Depth: 2, Flag: engine.TTLowerBound, Age: 0},
	}
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	entry, ok := loaded[0xABCDEF]
	if !ok {
		t.Fatal("expected record to survive close/reopen")
	}
	if entry.Score != 7 {
		t.Errorf("Score = %d, want 7", entry.Score)
	}
}

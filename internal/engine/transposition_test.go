package engine

import (
	"testing"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x1234567890ABCDEF)
	move := board.NewMove(board.E2, board.E4)
	tt.Store(hash, 4, 55, TTExact, move)

	entry, found := tt.Probe(hash)
	if !found {
		t.Fatal("expected TT hit after store")
	}
	if entry.BestMove != move {
		t.Errorf("BestMove = %v, want %v", entry.BestMove, move)
	}
	if entry.Score != 55 {
		t.Errorf("Score = %d, want 55", entry.Score)
	}
	if entry.Depth != 4 {
		t.Errorf("Depth = %d, want 4", entry.Depth)
	}
	if entry.Flag != TTExact {
		t.Errorf("Flag = %v, want TTExact", entry.Flag)
	}
}

func TestTranspositionProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, found := tt.Probe(0xDEADBEEF); found {
		t.Error("expected miss on empty table")
	}
}

// TestTranspositionEviction checks that once the table is full, storing
// a new key drops at least half of the entries whose age has fallen more
// than two generations behind the current one.
func TestTranspositionEviction(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.capacity = 100 // force a small table so eviction triggers deterministically

	move := board.NewMove(board.E2, board.E4)

	// Fill the table at age 0.
	for i := 0; i < 100; i++ {
		tt.Store(uint64(i), 1, 0, TTExact, move)
	}
	if len(tt.entries) != 100 {
		t.Fatalf("expected 100 entries, got %d", len(tt.entries))
	}

	// Age forward twice; the existing entries are not stale yet.
	tt.NewSearch()
	tt.NewSearch()
	if tt.age != 2 {
		t.Fatalf("expected age 2, got %d", tt.age)
	}

	// One more insert beyond capacity should trigger eviction of at
	// least half the stale (age < current-2 == age < 0, so none yet)...
	// advance age further so age-0 entries are actually stale.
	tt.NewSearch()
	tt.Store(uint64(999), 1, 0, TTExact, move)

	if len(tt.entries) >= 100 {
		t.Errorf("expected eviction to shrink the table below capacity, got %d entries", len(tt.entries))
	}
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	move := board.NewMove(board.E2, board.E4)
	tt.Store(1, 1, 1, TTExact, move)
	tt.NewSearch()

	tt.Clear()
	if len(tt.entries) != 0 {
		t.Error("expected empty table after Clear")
	}
	if tt.age != 0 {
		t.Error("expected age reset to 0 after Clear")
	}
	if _, found := tt.Probe(1); found {
		t.Error("expected miss after Clear")
	}
}

func TestTranspositionSnapshotLoad(t *testing.T) {
	src := NewTranspositionTable(1)
	move := board.NewMove(board.E2, board.E4)
	src.Store(42, 3, 10, TTExact, move)

	snap := src.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 snapshot record, got %d", len(snap))
	}

	dst := NewTranspositionTable(1)
	dst.Load(snap)

	entry, found := dst.Probe(42)
	if !found {
		t.Fatal("expected hit after Load")
	}
	if entry.Score != 10 || entry.Depth != 3 {
		t.Errorf("loaded entry mismatch: %+v", entry)
	}
}

func TestAdjustScoreForMateDistance(t *testing.T) {
	score := MateScore - 2
	toTT := AdjustScoreToTT(score, 5)
	back := AdjustScoreFromTT(toTT, 5)
	if back != score {
		t.Errorf("round trip mismatch: got %d, want %d", back, score)
	}
}

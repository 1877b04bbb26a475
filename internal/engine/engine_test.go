package engine

import (
	"testing"
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestGetBestMoveDepthForced(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)

	var lastDepth int
	move := eng.GetBestMove(UCILimits{Depth: 3}, func(info InfoLine) {
		lastDepth = info.Depth
	})

	if move == board.NoMove {
		t.Fatal("expected a move from the starting position")
	}
	if lastDepth != 3 {
		t.Errorf("expected iterative deepening to reach depth 3, last reported depth = %d", lastDepth)
	}
}

func TestGetBestMoveRespectsMoveTime(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)
	eng.SetMaxDepth(MaxMaxDepth)

	start := time.Now()
	move := eng.GetBestMove(UCILimits{MoveTime: 100 * time.Millisecond}, func(InfoLine) {})
	elapsed := time.Since(start)

	if move == board.NoMove {
		t.Fatal("expected a move under a time budget")
	}
	// Generous upper bound: the clock is only checked between nodes, so
	// some overrun past the budget is expected, but it should not run
	// anywhere near unbounded depth.
	if elapsed > 2*time.Second {
		t.Errorf("search overran its time budget badly: %v", elapsed)
	}
}

func TestNewGameResetsState(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)
	eng.GetBestMove(UCILimits{Depth: 2}, func(InfoLine) {})

	if _, found := eng.TT().Probe(eng.Position().Hash); !found {
		t.Fatal("expected TT to hold the root position's entry before reset")
	}

	eng.NewGame()

	if eng.Position().Hash != board.NewPosition().Hash {
		t.Error("expected NewGame to reset the board to the starting position")
	}
	if len(eng.TT().Snapshot()) != 0 {
		t.Error("expected NewGame to clear the transposition table")
	}
}

func TestResizeTTClearsEntries(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)
	eng.GetBestMove(UCILimits{Depth: 2}, func(InfoLine) {})

	eng.ResizeTT(32)
	if len(eng.TT().Snapshot()) != 0 {
		t.Error("expected ResizeTT to start from an empty table")
	}
	if eng.TT().Size() <= 0 {
		t.Error("expected a positive capacity after resize")
	}
}

func TestPerftMatchesKnownStartingPositionCounts(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)
	pos := board.NewPosition()

	if got := eng.Perft(pos, 1); got != 20 {
		t.Errorf("perft(1) = %d, want 20", got)
	}
	if got := eng.Perft(pos, 2); got != 400 {
		t.Errorf("perft(2) = %d, want 400", got)
	}
}

func TestSetEvaluatorSwapsWithoutLosingPosition(t *testing.T) {
	eng := NewEngine(MobilityEvaluator{}, 16)
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	eng.SetPosition(pos)

	eng.SetEvaluator(CaptureEvaluator{})
	if eng.Position().Hash != pos.Hash {
		t.Error("SetEvaluator should not disturb the current position")
	}
}

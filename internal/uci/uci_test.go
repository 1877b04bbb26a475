package uci

import (
	"testing"
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestParseMoveBasic(t *testing.T) {
	pos := board.NewPosition()
	move := parseMove(pos, "e2e4")
	if move == board.NoMove {
		t.Fatal("expected e2e4 to parse as a legal move")
	}
	if move.From() != board.E2 || move.To() != board.E4 {
		t.Errorf("parsed move = %v, want e2-e4", move)
	}
}

func TestParseMovePromotion(t *testing.T) {
	pos, err := board.ParseFEN("8/P7/8/8/8/8/8/k1K5 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	move := parseMove(pos, "a7a8q")
	if move == board.NoMove {
		t.Fatal("expected a7a8q to parse as a legal promotion")
	}
	if !move.IsPromotion() || move.Promotion() != board.Queen {
		t.Errorf("expected queen promotion, got %v", move)
	}
}

func TestParseMoveInvalidReturnsNoMove(t *testing.T) {
	pos := board.NewPosition()
	if move := parseMove(pos, "e2e5"); move != board.NoMove {
		t.Errorf("illegal move should parse to NoMove, got %v", move)
	}
	if move := parseMove(pos, "zz"); move != board.NoMove {
		t.Errorf("malformed move string should parse to NoMove, got %v", move)
	}
}

func TestParseGoOptionsDepthAndClock(t *testing.T) {
	opts := parseGoOptions([]string{"depth", "5", "wtime", "60000", "btime", "59000", "winc", "500"})
	if opts.depth != 5 {
		t.Errorf("depth = %d, want 5", opts.depth)
	}
	if opts.wtime != 60*time.Second {
		t.Errorf("wtime = %v, want 60s", opts.wtime)
	}
	if opts.btime != 59*time.Second {
		t.Errorf("btime = %v, want 59s", opts.btime)
	}
	if opts.winc != 500*time.Millisecond {
		t.Errorf("winc = %v, want 500ms", opts.winc)
	}
}

func TestParseGoOptionsEmpty(t *testing.T) {
	opts := parseGoOptions(nil)
	if opts.depth != 0 || opts.wtime != 0 || opts.btime != 0 {
		t.Errorf("expected zero-value options for an empty go command, got %+v", opts)
	}
}

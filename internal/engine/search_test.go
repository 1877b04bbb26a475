package engine

import (
	"testing"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: Re1-e8 delivers an immediate back-rank mate against
	// the Black king boxed in by its own pawns.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tt := NewTranspositionTable(1)
	s := NewSearcher(tt, MobilityEvaluator{})
	move, score := s.Search(pos, 3, nil)

	if move == board.NoMove {
		t.Fatal("expected a move to be found")
	}
	if move.From() != board.E1 || move.To() != board.E8 {
		t.Errorf("expected Re1-e8#, got %v", move)
	}
	if score < MateScore-10 {
		t.Errorf("expected a near-mate score, got %d", score)
	}
}

func TestSearchReturnsLegalMoveFromStartingPosition(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt, MobilityEvaluator{})

	move, _ := s.Search(pos, 2, nil)
	if move == board.NoMove {
		t.Fatal("expected a legal move from the starting position")
	}
}

func TestSearchStoresTTEntryAfterSearch(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt, MobilityEvaluator{})

	s.Search(pos, 2, nil)

	if _, found := tt.Probe(pos.Hash); !found {
		t.Error("expected the root position to be stored in the TT after a search")
	}
}

func TestQsearchIsStableOnQuietPosition(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt, MobilityEvaluator{})
	s.pos = pos

	standPat := s.eval1()
	score := s.qsearch(-Infinity, Infinity, 0)
	if score != standPat {
		t.Errorf("quiescence on a position with no captures should return the static eval: got %d, want %d", score, standPat)
	}
}

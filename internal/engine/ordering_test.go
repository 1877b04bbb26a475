package engine

import (
	"testing"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestScoreMoveTTBonus(t *testing.T) {
	pos := board.NewPosition()
	mo := NewMoveOrderer()

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		t.Fatal("expected legal moves from starting position")
	}
	ttMove := moves.Get(0)

	score := mo.scoreMove(pos, ttMove, 0, ttMove)
	if score != ttMoveScore {
		t.Errorf("TT move score = %d, want %d", score, ttMoveScore)
	}
}

func TestMVVLVAOrdersHigherValueVictimFirst(t *testing.T) {
	// White pawn on e5 can capture either a knight on d6 or a rook on f6.
	pos, err := ParsePositionFEN(t, "4k3/8/3n1r2/4P3/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	mo := NewMoveOrderer()
	moves := pos.GenerateLegalMoves()

	var exf6, exd6 board.Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() == board.F6 {
			exf6 = m
		}
		if m.To() == board.D6 {
			exd6 = m
		}
	}
	if exf6 == board.NoMove || exd6 == board.NoMove {
		t.Fatal("expected both capture moves to be present")
	}

	rookCapture := mo.scoreMove(pos, exf6, 0, board.NoMove)
	knightCapture := mo.scoreMove(pos, exd6, 0, board.NoMove)
	if rookCapture <= knightCapture {
		t.Errorf("capturing a rook (%d) should outrank capturing a knight (%d)", rookCapture, knightCapture)
	}
}

func TestUpdateKillersSlotOrder(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	mo.UpdateKillers(m1, 0)
	if mo.killers[0][0] != m1 {
		t.Fatalf("expected m1 in slot 0")
	}

	mo.UpdateKillers(m2, 0)
	if mo.killers[0][0] != m2 || mo.killers[0][1] != m1 {
		t.Errorf("expected slot0=m2, slot1=m1, got slot0=%v slot1=%v", mo.killers[0][0], mo.killers[0][1])
	}

	// Re-inserting the current slot-0 killer is a no-op.
	mo.UpdateKillers(m2, 0)
	if mo.killers[0][0] != m2 || mo.killers[0][1] != m1 {
		t.Error("re-inserting slot-0 killer should not shift slots")
	}
}

func TestUpdateHistoryIsAdditiveAndNonNegative(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(m, 3)
	if mo.history[m.From()][m.To()] != 9 {
		t.Errorf("history = %d, want 9", mo.history[m.From()][m.To()])
	}

	mo.UpdateHistory(m, 4)
	if mo.history[m.From()][m.To()] != 25 {
		t.Errorf("history = %d, want 25 (9+16)", mo.history[m.From()][m.To()])
	}
	if mo.history[m.From()][m.To()] < 0 {
		t.Error("history must never go negative")
	}
}

func TestClearHalvesHistoryAndResetsKillers(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)
	mo.UpdateHistory(m, 10) // +100
	mo.UpdateKillers(m, 0)

	mo.Clear()

	if mo.history[m.From()][m.To()] != 50 {
		t.Errorf("history after Clear = %d, want 50", mo.history[m.From()][m.To()])
	}
	if mo.killers[0][0] != board.NoMove {
		t.Error("killers should be reset by Clear")
	}
}

func TestPickMoveSelectsHighestRemainingScore(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	scores := make([]int, moves.Len())
	for i := range scores {
		scores[i] = i
	}

	// The highest score is at the last index; PickMove(0) should bring
	// it to the front.
	PickMove(moves, scores, 0)
	if scores[0] != moves.Len()-1 {
		t.Errorf("PickMove did not select the highest remaining score: got %d", scores[0])
	}
}

// ParsePositionFEN is a small test helper wrapping board.ParseFEN so
// assertion call sites read naturally.
func ParsePositionFEN(t *testing.T, fen string) (*board.Position, error) {
	t.Helper()
	return board.ParseFEN(fen)
}

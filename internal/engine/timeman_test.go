package engine

import (
	"testing"
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
)

func TestTimeManagerMoveTimeOverridesBucket(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{
		MoveTime: 2500 * time.Millisecond,
		Time:     [2]time.Duration{60 * time.Second, 60 * time.Second},
	}
	tm.Init(limits, board.White, 0)

	budget, ok := tm.Budget()
	if !ok {
		t.Fatal("expected a budget when MoveTime is set")
	}
	if budget != 2500*time.Millisecond {
		t.Errorf("budget = %v, want 2500ms", budget)
	}
}

func TestTimeManagerInfiniteHasNoBudget(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{Infinite: true}, board.White, 0)

	if _, ok := tm.Budget(); ok {
		t.Error("expected no budget under Infinite")
	}
	if tm.IsTimeUp() {
		t.Error("IsTimeUp must never fire with no budget")
	}
}

func TestTimeManagerBucketSelection(t *testing.T) {
	tm := NewTimeManager()
	// Plenty of clock left: should land in the generous bucket, capped
	// at 30s, well above a minute.
	tm.Init(UCILimits{Time: [2]time.Duration{40 * time.Minute, 40 * time.Minute}}, board.White, 0)
	budget, ok := tm.Budget()
	if !ok {
		t.Fatal("expected a budget")
	}
	if budget > 30*time.Second {
		t.Errorf("budget %v exceeds the 30s cap for the >1800s bucket", budget)
	}

	// Very little clock left: should land in the tightest bucket.
	tm2 := NewTimeManager()
	tm2.Init(UCILimits{Time: [2]time.Duration{10 * time.Second, 10 * time.Second}}, board.White, 0)
	budget2, ok := tm2.Budget()
	if !ok {
		t.Fatal("expected a budget")
	}
	if budget2 > 5*time.Second {
		t.Errorf("budget %v exceeds the 5s cap for the <=60s bucket", budget2)
	}
}

func TestTimeManagerNoTimeLeftHasNoBudget(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{Time: [2]time.Duration{0, 0}}, board.White, 0)
	if _, ok := tm.Budget(); ok {
		t.Error("expected no budget when remaining clock time is zero")
	}
}

package engine

import (
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
)

// UCILimits contains UCI time control parameters.
type UCILimits struct {
	Time      [2]time.Duration // wtime, btime (remaining time for each color)
	Inc       [2]time.Duration // winc, binc (increment per move)
	MovesToGo int              // moves until next time control (0 = sudden death)
	MoveTime  time.Duration    // fixed time per move (overrides other time controls)
	Depth     int              // maximum search depth
	Nodes     uint64           // maximum nodes to search
	Infinite  bool             // search until stopped
	Ponder    bool             // ponder mode
}

// TimeManager derives a move deadline from remaining clock time and
// increment, per a fixed bucket table keyed on how much time is left.
type TimeManager struct {
	budget    time.Duration // per-move deadline, meaningful only when hasBudget
	hasBudget bool          // false ⇒ no deadline (depth-only mode)
	startTime time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init initializes the time manager for a new search. us selects which
// side's clock and increment feed the bucket formula; ply is unused.
func (tm *TimeManager) Init(limits UCILimits, us board.Color, ply int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.budget = limits.MoveTime
		tm.hasBudget = true
		return
	}

	if limits.Infinite {
		tm.hasBudget = false
		return
	}

	timeLeft := limits.Time[us]
	if timeLeft <= 0 {
		tm.hasBudget = false
		return
	}

	inc := limits.Inc[us]
	secs := timeLeft.Seconds()

	var formula time.Duration
	var capTime time.Duration
	switch {
	case secs > 1800:
		formula = timeLeft/40 + (inc*8)/10
		capTime = 30 * time.Second
	case secs > 600:
		formula = timeLeft/30 + (inc*8)/10
		capTime = 20 * time.Second
	case secs > 60:
		formula = timeLeft/20 + (inc*8)/10
		capTime = 10 * time.Second
	default:
		formula = timeLeft/10 + (inc*8)/10
		capTime = 5 * time.Second
	}

	tm.budget = formula
	if capTime < tm.budget {
		tm.budget = capTime
	}
	tm.hasBudget = true
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// IsTimeUp reports whether now - start_time ≥ budget. With no budget
// (depth-only mode) it never fires.
func (tm *TimeManager) IsTimeUp() bool {
	if !tm.hasBudget {
		return false
	}
	return tm.Elapsed() >= tm.budget
}

// Budget returns the computed per-move time budget, and whether one is
// in effect at all.
func (tm *TimeManager) Budget() (time.Duration, bool) {
	return tm.budget, tm.hasBudget
}

package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
)

// Default and clamp bounds for UCI-configurable options.
const (
	DefaultMaxDepth = 6
	MinMaxDepth     = 1
	MaxMaxDepth     = 20

	DefaultTTSizeMB = 64
	MinTTSizeMB     = 16
	MaxTTSizeMB     = 1024
)

// InfoLine is one completed iterative-deepening depth, ready for the
// UCI front end to format as an `info` line.
type InfoLine struct {
	Depth int
	Score int
	Nodes uint64
	NPS   uint64
	Time  time.Duration
	PV    []board.Move
}

// Engine owns the long-lived search state for one game: the board, the
// transposition table, the move orderer's killer/history tables, and
// the configured evaluator. It persists across successive `go` calls
// within a game and is reset wholesale on `ucinewgame`.
type Engine struct {
	pos     *board.Position
	tt      *TranspositionTable
	s       *Searcher
	eval    Evaluator
	tm      *TimeManager
	history []uint64

	maxDepth int
	age      uint8
}

// NewEngine creates an engine with the given evaluator and initial TT
// size in megabytes.
func NewEngine(eval Evaluator, ttSizeMB int) *Engine {
	tt := NewTranspositionTable(clampInt(ttSizeMB, MinTTSizeMB, MaxTTSizeMB))
	e := &Engine{
		pos:      board.NewPosition(),
		tt:       tt,
		eval:     eval,
		tm:       NewTimeManager(),
		maxDepth: DefaultMaxDepth,
	}
	e.s = NewSearcher(tt, eval)
	return e
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetEvaluator swaps the active evaluator. Existing TT records remain
// valid: a stored value is a number, independent of which evaluator
// produced it, though mixing evaluators mid-game will naturally degrade
// the hit quality of old entries.
func (e *Engine) SetEvaluator(eval Evaluator) {
	e.eval = eval
	e.s = NewSearcher(e.tt, eval)
}

// Position returns the engine's current board, owned by the engine.
func (e *Engine) Position() *board.Position {
	return e.pos
}

// SetPosition replaces the engine's board wholesale (used by the UCI
// `position` command after parsing a FEN and applying moves). history,
// if given, is the Zobrist key of every position reached earlier in the
// game (oldest first, current position excluded), so the next search
// can recognize a threefold repetition that started before it began.
func (e *Engine) SetPosition(pos *board.Position, history ...uint64) {
	e.pos = pos
	e.history = history
}

// SetMaxDepth clamps and installs a new default search depth.
func (e *Engine) SetMaxDepth(depth int) {
	e.maxDepth = clampInt(depth, MinMaxDepth, MaxMaxDepth)
}

// MaxDepth returns the configured default search depth.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// ResizeTT rebuilds the transposition table at a new size, discarding
// any records it held.
func (e *Engine) ResizeTT(sizeMB int) {
	clamped := clampInt(sizeMB, MinTTSizeMB, MaxTTSizeMB)
	if clamped != sizeMB {
		log.Printf("[Engine] requested TT size %d MB out of range, clamped to %d MB", sizeMB, clamped)
	}
	e.tt = NewTranspositionTable(clamped)
	e.s = NewSearcher(e.tt, e.eval)
}

// TT exposes the transposition table, e.g. for persistence snapshotting.
func (e *Engine) TT() *TranspositionTable {
	return e.tt
}

// NewGame resets all engine state for a new game: board to the starting
// position, TT and move-ordering tables cleared, age reset.
func (e *Engine) NewGame() {
	e.pos = board.NewPosition()
	e.history = nil
	e.tt.Clear()
	e.s = NewSearcher(e.tt, e.eval)
	e.age = 0
}

// Stop requests the in-flight search to unwind at its next cooperative
// check point.
func (e *Engine) Stop() {
	e.s.Stop()
}

// GetBestMove runs the iterative-deepening controller described by
// §4.6: depth 1..maxDepth (or the forced depth override), calling
// onInfo once per completed iteration. It always returns exactly one
// move (board.NoMove if the position has no legal moves at all).
func (e *Engine) GetBestMove(limits UCILimits, onInfo func(InfoLine)) board.Move {
	moves := e.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return board.NoMove
	}

	depthCap := e.maxDepth
	forcedDepth := limits.Depth > 0
	if forcedDepth {
		depthCap = limits.Depth
		// depth-forced go runs with no clock: the only cooperative
		// check point becomes the boundary between ID iterations.
		e.tm = NewTimeManager()
	} else {
		e.tm = NewTimeManager()
		e.tm.Init(limits, e.pos.SideToMove, 0)
	}

	e.tt.NewSearch()
	e.s.orderer.Clear()
	e.age++

	start := time.Now()
	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= depthCap; depth++ {
		if e.s.stopFlag.Load() {
			break
		}

		move, score := e.s.Search(e.pos, depth, e.tm, e.history...)

		// Partial-iteration policy: an iteration aborted by stop or the
		// deadline returns NoMove (the root gives up as soon as the stop
		// flag is set, including at its own entry), so only a completed
		// depth's result is adopted here.
		if move != board.NoMove {
			bestMove = move
			bestScore = score

			elapsed := time.Since(start)
			nodes := e.s.Nodes()
			nps := uint64(0)
			if elapsed > 0 {
				nps = uint64(float64(nodes) / elapsed.Seconds())
			}
			onInfo(InfoLine{
				Depth: depth,
				Score: score,
				Nodes: nodes,
				NPS:   nps,
				Time:  elapsed,
				PV:    e.s.GetPV(),
			})
		}

		if forcedDepth {
			if e.s.stopFlag.Load() {
				break
			}
			continue
		}
		if e.tm.IsTimeUp() {
			break
		}
	}

	if bestMove == board.NoMove {
		// No iteration completed (e.g. zero time budget): fall back to
		// the first legal move in generation order so `go` still yields
		// a move.
		bestMove = moves.Get(0)
	}

	_ = bestScore
	return bestMove
}

// Perft counts leaf nodes at depth for move-generator self-checking.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}

	return nodes
}

// SummaryString formats the end-of-search `info string` diagnostic.
func (e *Engine) SummaryString() string {
	return fmt.Sprintf("info string hashfull %d nodes %d", e.tt.HashFull(), e.s.Nodes())
}

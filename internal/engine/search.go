package engine

import (
	"sync/atomic"

	"github.com/hailam/chessplay-opponent/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
	MaxQ      = 8 // quiescence depth cap
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the PVS alpha-beta search described by the engine's
// search contract: iterative deepening feeds it one depth at a time, and
// it cooperatively checks the clock at the top of every node.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer
	eval    Evaluator
	tm      *TimeManager

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	undoStack [MaxPly]board.UndoInfo

	// gameHistory holds Zobrist keys for every position reached earlier
	// in the game, threaded in from the UCI position command. plyPath
	// tracks the keys visited on the path from the search root down to
	// the current node, indexed by ply. Together the two let isDraw
	// see a repetition that spans the boundary between "moves already
	// played" and "moves this search is considering."
	gameHistory []uint64
	plyPath     [MaxPly]uint64
}

// NewSearcher creates a new searcher using the given TT and evaluator.
func NewSearcher(tt *TranspositionTable, eval Evaluator) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		eval:    eval,
	}
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset resets per-search node/stop state. The move orderer is not
// touched here; the iterative-deepening controller calls its Clear()
// once per search, which resets the killers and halves the history.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
}

// Nodes returns the number of nodes searched so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Orderer exposes the searcher's move orderer (killer and history
// tables).
func (s *Searcher) Orderer() *MoveOrderer {
	return s.orderer
}

// timeUp reports whether the current search's deadline has passed,
// sampled periodically rather than every node to keep the check cheap.
//
// In depth-forced mode (no time manager, or one with no budget) this
// never fires mid-search: a `stop` there is only observed by the
// iterative-deepening controller between depths, matching the source's
// behavior of disabling the clock entirely when `depth` is given.
func (s *Searcher) timeUp() bool {
	if s.nodes&2047 != 0 {
		return false
	}
	if s.tm == nil {
		return false
	}
	if _, hasBudget := s.tm.Budget(); !hasBudget {
		return false
	}
	if s.stopFlag.Load() {
		return true
	}
	if s.tm.IsTimeUp() {
		s.stopFlag.Store(true)
		return true
	}
	return false
}

// eval1 evaluates the current position from the side to move's view.
func (s *Searcher) eval1() int {
	return s.eval.Eval(s.pos)
}

// Search runs a single depth of the PVS search against pos, using tm for
// the cooperative time-up check (nil disables it — depth-limited mode).
// history carries the Zobrist keys of positions already played earlier
// in the game (oldest first, not including pos itself), so repetition
// draws that started before this search can still be recognized; it is
// optional and may be omitted entirely for depth-limited self-play.
func (s *Searcher) Search(pos *board.Position, depth int, tm *TimeManager, history ...uint64) (board.Move, int) {
	s.pos = pos
	s.tm = tm
	s.gameHistory = history
	s.Reset()

	score, bestMove := s.pvs(depth, 0, -Infinity, Infinity, true)
	return bestMove, score
}

// pvs implements §4.5's PVS alpha-beta contract.
func (s *Searcher) pvs(depth, ply int, alpha, beta int, allowNull bool) (int, board.Move) {
	s.pv.length[ply] = ply

	// 1. Time check.
	if s.timeUp() {
		return s.eval1(), board.NoMove
	}

	s.plyPath[ply] = s.pos.Hash

	// 2. Terminal check.
	if ply > 0 {
		if s.isDraw(ply) {
			return 0, board.NoMove
		}
	}
	inCheck := s.pos.InCheck()

	// 3. Depth floor.
	if depth <= 0 {
		return s.qsearch(alpha, beta, 0), board.NoMove
	}

	s.nodes++
	hash := s.pos.Hash
	origAlpha := alpha

	// 5. TT probe.
	var ttMove board.Move
	if entry, found := s.tt.Probe(hash); found {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score, ttMove
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, ttMove
			}
		}
	}

	// 6. Null-move pruning.
	if allowNull && depth >= 3 && !inCheck && s.pos.HasNonPawnMaterial() && s.eval1() >= beta {
		undo := s.pos.MakeNullMove()
		score, _ := s.pvs(depth-3, ply+1, -beta, -beta+1, false)
		score = -score
		s.pos.UnmakeNullMove(undo)
		if s.stopFlag.Load() {
			return 0, board.NoMove
		}
		if score >= beta {
			return beta, board.NoMove
		}
	}

	// 7. Generate legal moves.
	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply, board.NoMove
		}
		return 0, board.NoMove
	}

	// 8. Order moves.
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.undoStack[ply] = s.pos.MakeMove(move)
		if !s.undoStack[ply].Valid {
			continue
		}

		var score int
		if i == 0 {
			score, _ = s.pvs(depth-1, ply+1, -beta, -alpha, true)
			score = -score
		} else {
			score, _ = s.pvs(depth-1, ply+1, -alpha-1, -alpha, true)
			score = -score
			if score > alpha && score < beta {
				score, _ = s.pvs(depth-1, ply+1, -beta, -alpha, true)
				score = -score
			}
		}

		s.pos.UnmakeMove(move, s.undoStack[ply])

		if s.stopFlag.Load() {
			return 0, board.NoMove
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score > alpha {
			alpha = score

			s.pv.moves[ply][ply] = move
			for j := ply + 1; j < s.pv.length[ply+1]; j++ {
				s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
			}
			s.pv.length[ply] = s.pv.length[ply+1]
		}

		if alpha >= beta {
			if !move.IsCapture(s.pos) {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(move, depth)
			}
			break
		}
	}

	// 11. Classify bound.
	if origAlpha < bestScore && bestScore < beta {
		flag = TTExact
	} else if bestScore >= beta {
		flag = TTLowerBound
	} else {
		flag = TTUpperBound
	}
	s.tt.Store(hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)

	return bestScore, bestMove
}

// qsearch implements §4.4's quiescence contract: captures only, ordered
// by MVV-LVA, bounded to MaxQ plies of extension.
func (s *Searcher) qsearch(alpha, beta int, qdepth int) int {
	if s.timeUp() || qdepth > MaxQ {
		return s.eval1()
	}

	s.nodes++

	standPat := s.eval1()
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := s.pos.GenerateCaptures()
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = s.orderer.mvvLvaScore(s.pos, moves.Get(i))
	}

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)
		if !move.IsCapture(s.pos) {
			continue
		}

		undo := s.pos.MakeMove(move)
		if !undo.Valid {
			continue
		}

		score := -s.qsearch(-beta, -alpha, qdepth+1)

		s.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// isDraw reports 50-move-rule, insufficient-material, and
// threefold-repetition draws at the given ply.
func (s *Searcher) isDraw(ply int) bool {
	if s.pos.HalfMoveClock >= 100 {
		return true
	}
	if s.pos.IsInsufficientMaterial() {
		return true
	}
	return s.isRepetition(ply)
}

// isRepetition reports whether the position at the current ply has
// already occurred (by Zobrist key) at least twice before, counting
// both gameHistory (positions played before this search started) and
// plyPath (positions this search passed through on the way down to
// ply); the current position itself is not counted. Those two earlier
// occurrences plus the current one make a threefold-repetition draw
// under the UCI-visible rules this engine follows.
func (s *Searcher) isRepetition(ply int) bool {
	hash := s.pos.Hash
	occurrences := 0
	for _, h := range s.gameHistory {
		if h == hash {
			occurrences++
		}
	}
	for p := 0; p < ply; p++ {
		if s.plyPath[p] == hash {
			occurrences++
		}
	}
	return occurrences >= 2
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	for i := 0; i < s.pv.length[0]; i++ {
		pv[i] = s.pv.moves[0][i]
	}
	return pv
}

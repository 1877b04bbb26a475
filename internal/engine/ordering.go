package engine

import (
	"github.com/hailam/chessplay-opponent/internal/board"
)

// Move ordering tier scores, per the fixed rank table: TT move, then
// checkmate, check, capture, killer, promotion, pawn advance, and
// finally the history score for everything else.
const (
	ttMoveScore    = 1000000
	mateScoreBonus = 900000
	checkScore     = 500000
	captureBase    = 400000
	killerScore    = 300000
	promotionBase  = 200000
	pawnAdvanceBase = 100000
)

// orderingWeights are ordering-only piece weights for MVV-LVA and
// promotion scoring; they must never leak into evaluation.
var orderingWeights = [6]int{1, 3, 3, 5, 9, 0}

// MoveOrderer holds the per-search mutable ordering state: killer moves
// and the quiet-move history table.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killers and ages the history table for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove)
	}
	return scores
}

// scoreMove returns the ordering score for a single move, per §4.3's
// eight-tier rank table.
func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return ttMoveScore
	}

	if givesCheckmate(pos, m) {
		return mateScoreBonus
	}
	if givesCheck(pos, m) {
		return checkScore
	}

	if m.IsCapture(pos) {
		return captureBase + mo.mvvLvaScore(pos, m)
	}

	if m == mo.killers[ply][0] || m == mo.killers[ply][1] {
		return killerScore
	}

	if m.IsPromotion() {
		return promotionBase + orderingWeights[m.Promotion()]
	}

	if bonus, ok := pawnAdvanceBonus(pos, m); ok {
		return pawnAdvanceBase + bonus
	}

	return mo.history[m.From()][m.To()]
}

// mvvLvaScore computes MVV*10 - LVA using the fixed ordering weights.
func (mo *MoveOrderer) mvvLvaScore(pos *board.Position, m board.Move) int {
	attackerPiece := pos.PieceAt(m.From())
	if attackerPiece == board.NoPiece {
		return 0
	}
	attacker := attackerPiece.Type()

	var victim board.PieceType
	if m.IsEnPassant() {
		victim = board.Pawn
	} else {
		capturedPiece := pos.PieceAt(m.To())
		if capturedPiece == board.NoPiece {
			return 0
		}
		victim = capturedPiece.Type()
	}

	if victim > board.King || attacker > board.King {
		return 0
	}
	return orderingWeights[victim]*10 - orderingWeights[attacker]
}

// givesCheckmate reports whether playing m leaves the opponent
// checkmated.
func givesCheckmate(pos *board.Position, m board.Move) bool {
	undo := pos.MakeMove(m)
	defer pos.UnmakeMove(m, undo)
	return pos.IsCheckmate()
}

// givesCheck reports whether playing m leaves the opponent in check
// (but not checkmated; checkmate is ranked separately and higher).
func givesCheck(pos *board.Position, m board.Move) bool {
	undo := pos.MakeMove(m)
	defer pos.UnmakeMove(m, undo)
	return pos.InCheck() && !pos.IsCheckmate()
}

// pawnAdvanceBonus reports whether m is a non-capture pawn push to rank
// ≥6 (White) or ≤3 (Black), and its rank-proximity bonus if so.
func pawnAdvanceBonus(pos *board.Position, m board.Move) (int, bool) {
	piece := pos.PieceAt(m.From())
	if piece == board.NoPiece || piece.Type() != board.Pawn || m.IsCapture(pos) {
		return 0, false
	}

	rank := m.To().Rank() // 0-indexed: rank1=0 .. rank8=7
	if piece.Color() == board.White {
		if rank >= 5 { // rank ≥6 in 1-indexed terms
			return (rank - 4) * 1000, true
		}
		return 0, false
	}
	if rank <= 2 { // rank ≤3 in 1-indexed terms
		return (3 - rank) * 1000, true
	}
	return 0, false
}

// SortMoves sorts moves by score, descending. A selection sort is
// sufficient at the branching factors chess search sees (~40 moves).
func SortMoves(moves *board.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best remaining move and moves it to index,
// enabling lazy move sorting (only sort as far as the search gets).
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff at ply.
// Slot 0 is always the most recent; a move already in slot 0 is a no-op.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory records a quiet move that caused a beta cutoff, adding
// depth*depth to its (from,to) history score. History is a non-negative
// counter: it is incremented only here, and the whole table is halved
// by Clear() between searches and here whenever an entry exceeds 400000.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	from, to := m.From(), m.To()
	mo.history[from][to] += depth * depth
	if mo.history[from][to] > 400000 {
		for i := range mo.history {
			for j := range mo.history[i] {
				mo.history[i][j] /= 2
			}
		}
	}
}

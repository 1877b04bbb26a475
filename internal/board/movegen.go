package board

// GenerateLegalMoves returns every legal move in the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generatePseudoLegal(ml)
	return p.keepLegal(ml)
}

// GeneratePseudoLegalMoves returns every pseudo-legal move: moves that
// follow each piece's movement rules but may leave the mover's own
// king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generatePseudoLegal(ml)
	return ml
}

// GenerateCaptures returns every legal capturing move (including en
// passant and capturing/non-capturing promotions), for use in
// quiescence search where quiet moves are pruned.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateNoisyMoves(ml)
	return p.keepLegal(ml)
}

// generatePseudoLegal fills ml with every pseudo-legal move for the
// side to move.
func (p *Position) generatePseudoLegal(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	ownPieces := p.Occupied[us]

	p.generatePawnMoves(ml, us, p.Occupied[us.Other()], occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, KnightAttacks(from)&^ownPieces)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		addTargets(ml, from, BishopAttacks(from, occupied)&^ownPieces)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		addTargets(ml, from, RookAttacks(from, occupied)&^ownPieces)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		addTargets(ml, from, QueenAttacks(from, occupied)&^ownPieces)
	}

	from := p.KingSquare[us]
	addTargets(ml, from, KingAttacks(from)&^ownPieces)
	p.generateCastlingMoves(ml, us)
}

// addTargets appends one non-special move from -> to for every bit set
// in targets.
func addTargets(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(NewMove(from, to))
	}
}

// addPromotions appends all four promotion choices for a pawn
// reaching to from from.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generatePawnMoves appends every pawn push, capture, promotion, and
// en passant move for us.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, captureLeft, captureRight, lastRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		captureLeft = pawns.NorthWest() & enemies
		captureRight = pawns.NorthEast() & enemies
		lastRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		captureLeft = pawns.SouthWest() & enemies
		captureRight = pawns.SouthEast() & enemies
		lastRank = Rank1
		pushDir = -8
	}

	addShiftedTargets(ml, push1&^lastRank, pushDir)
	addShiftedTargets(ml, push2, 2*pushDir)
	addShiftedTargets(ml, captureLeft&^lastRank, pushDir-1)
	addShiftedTargets(ml, captureRight&^lastRank, pushDir+1)

	addShiftedPromotions(ml, push1&lastRank, pushDir)
	addShiftedPromotions(ml, captureLeft&lastRank, pushDir-1)
	addShiftedPromotions(ml, captureRight&lastRank, pushDir+1)

	p.generateEnPassant(ml, us, pawns)
}

// addShiftedTargets appends one move per bit in targets, each running
// from (to - delta) to to — delta being the pawn push/capture offset
// that produced targets in the first place.
func addShiftedTargets(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(NewMove(Square(int(to)-delta), to))
	}
}

// addShiftedPromotions is addShiftedTargets for promotion-rank targets:
// it appends all four promotion choices per bit instead of one move.
func addShiftedPromotions(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := targets.PopLSB()
		addPromotions(ml, Square(int(to)-delta), to)
	}
}

// generateEnPassant appends the en passant capture(s) available from
// pawns, if any.
func (p *Position) generateEnPassant(ml *MoveList, us Color, pawns Bitboard) {
	if p.EnPassant == NoSquare {
		return
	}
	target := SquareBB(p.EnPassant)

	var attackers Bitboard
	if us == White {
		attackers = (target.SouthWest() | target.SouthEast()) & pawns
	} else {
		attackers = (target.NorthWest() | target.NorthEast()) & pawns
	}
	for attackers != 0 {
		from := attackers.PopLSB()
		ml.Add(NewEnPassant(from, p.EnPassant))
	}
}

// generateCastlingMoves appends any castling moves currently available
// to us: the right must not have been forfeited, the squares between
// king and rook must be empty, and the king may not start, pass
// through, or land on an attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	rank := 0
	if us == Black {
		rank = 7
	}
	kingSide, queenSide := WhiteKingSideCastle, WhiteQueenSideCastle
	if us == Black {
		kingSide, queenSide = BlackKingSideCastle, BlackQueenSideCastle
	}

	e, f, g := NewSquare(4, rank), NewSquare(5, rank), NewSquare(6, rank)
	b, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)

	if p.CastlingRights&kingSide != 0 &&
		p.AllOccupied&(SquareBB(f)|SquareBB(g)) == 0 &&
		!p.IsSquareAttacked(e, them) && !p.IsSquareAttacked(f, them) && !p.IsSquareAttacked(g, them) {
		ml.Add(NewCastling(e, g))
	}

	if p.CastlingRights&queenSide != 0 &&
		p.AllOccupied&(SquareBB(b)|SquareBB(c)|SquareBB(d)) == 0 &&
		!p.IsSquareAttacked(e, them) && !p.IsSquareAttacked(d, them) && !p.IsSquareAttacked(c, them) {
		ml.Add(NewCastling(e, c))
	}
}

// generateNoisyMoves fills ml with captures, en passant, and all
// promotions (including the quiet push to the last rank) — the move
// set quiescence search explores.
func (p *Position) generateNoisyMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	pawns := p.Pieces[us][Pawn]
	var captureLeft, captureRight, lastRank Bitboard
	var pushDir int

	if us == White {
		captureLeft = pawns.NorthWest() & enemies
		captureRight = pawns.NorthEast() & enemies
		lastRank = Rank8
		pushDir = 8
	} else {
		captureLeft = pawns.SouthWest() & enemies
		captureRight = pawns.SouthEast() & enemies
		lastRank = Rank1
		pushDir = -8
	}

	addShiftedTargets(ml, captureLeft&^lastRank, pushDir-1)
	addShiftedTargets(ml, captureRight&^lastRank, pushDir+1)

	addShiftedPromotions(ml, captureLeft&lastRank, pushDir-1)
	addShiftedPromotions(ml, captureRight&lastRank, pushDir+1)

	var pushPromo Bitboard
	if us == White {
		pushPromo = pawns.North() & ^occupied & Rank8
	} else {
		pushPromo = pawns.South() & ^occupied & Rank1
	}
	for pushPromo != 0 {
		to := pushPromo.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir), to)
	}

	p.generateEnPassant(ml, us, pawns)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, KnightAttacks(from)&enemies)
	}
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		addTargets(ml, from, BishopAttacks(from, occupied)&enemies)
	}
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		addTargets(ml, from, RookAttacks(from, occupied)&enemies)
	}
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		addTargets(ml, from, QueenAttacks(from, occupied)&enemies)
	}

	from := p.KingSquare[us]
	addTargets(ml, from, KingAttacks(from)&enemies)
}

// keepLegal filters ml down to the moves that don't leave the mover's
// own king in check, returned as a fresh list.
func (p *Position) keepLegal(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether m can be played without leaving the mover's
// own king in check. King moves (other than castling, validated at
// generation time) are checked directly against the attack tables;
// every other move is verified by actually making and unmaking it,
// since discovered checks and en passant's double-capture case are
// otherwise easy to get wrong.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	kingSq := p.KingSquare[us]

	if from == kingSq {
		if m.IsCastling() {
			return true
		}
		occupiedWithoutKing := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occupiedWithoutKing) == 0
	}

	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	stillAttacked := p.IsSquareAttacked(kingSq, them)
	p.UnmakeMove(m, undo)

	return !stillAttacked
}

// MakeMove applies m to p in place and returns the state needed to
// reverse it with UnmakeMove. If from holds no piece, the position is
// left untouched and the returned UndoInfo has Valid set to false.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		Checkers:       p.Checkers,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return undo
	}
	undo.Valid = true
	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		undo.CapturedPiece = p.takePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.takePiece(to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.relocatePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promoPt][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.relocatePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	p.updateCastlingRightsAfter(pt, us, from, to)
	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassant[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	return undo
}

// castlingRookSquares returns the rook's origin and destination for a
// castling move whose king travels from -> to.
func castlingRookSquares(from, to Square) (rookFrom, rookTo Square) {
	rank := from.Rank()
	if to > from {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// updateCastlingRightsAfter revokes castling rights touched by this
// move: the mover's own rights if its king just moved, and whichever
// corner right belongs to a rook square that was vacated or captured
// on.
func (p *Position) updateCastlingRightsAfter(pt PieceType, us Color, from, to Square) {
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
}

// UnmakeMove reverses a move previously applied with MakeMove, using
// the UndoInfo it returned. Must be called with p in the exact state
// MakeMove left it in.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.relocatePiece(to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.relocatePiece(rookTo, rookFrom)
	}

	if undo.CapturedPiece != NoPiece {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = to - 8
			if us == Black {
				capturedSq = to + 8
			}
		}
		p.placePiece(undo.CapturedPiece, capturedSq)
	}
}

// HasLegalMoves reports whether the side to move has at least one
// legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no
// legal reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal move and
// is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn by stalemate, the
// 50-move rule, or insufficient material. It does not account for
// threefold repetition, which depends on game history rather than the
// position alone — see the engine package's own repetition tracking.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side retains enough
// material to deliver checkmate by any sequence of legal moves: bare
// kings, or king-plus-one-minor against a bare king.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wMinors := p.Pieces[White][Knight].PopCount() + p.Pieces[White][Bishop].PopCount()
	bMinors := p.Pieces[Black][Knight].PopCount() + p.Pieces[Black][Bishop].PopCount()

	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}

package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-5:   destination square
//	bits 6-11:  origin square
//	bits 12-13: move kind (normal, promotion, en passant, castling)
//	bits 14-15: promotion piece, offset from Knight (only meaningful
//	            when the move kind is promotion)
//
// A Move is a value, not a pointer into any table, so it's cheap to
// pass and store in bulk (see MoveList).
type Move uint16

const (
	moveToMask   Move = 0x3F
	moveFromMask Move = 0x3F << 6
	moveKindMask Move = 0x3 << 12
	movePromoMask Move = 0x3 << 14
)

// Move kinds, shifted into place for moveKindMask.
const (
	kindNormal    Move = 0 << 12
	kindPromotion Move = 1 << 12
	kindEnPassant Move = 2 << 12
	kindCastling  Move = 3 << 12
)

// NoMove is the zero value: origin and destination both a1, kind
// normal. Callers treat it as "no move" by construction, never by
// inspecting its fields.
const NoMove Move = 0

// NewMove builds a non-special move between two squares.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<6
}

// NewPromotion builds a pawn promotion to the given piece type
// (Knight, Bishop, Rook, or Queen).
func NewPromotion(from, to Square, promo PieceType) Move {
	offset := Move(promo - Knight)
	return Move(to) | Move(from)<<6 | kindPromotion | offset<<14
}

// NewEnPassant builds an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(to) | Move(from)<<6 | kindEnPassant
}

// NewCastling builds a castling move, encoded as the king's own
// two-square hop (the rook's hop is inferred from it at apply time).
func NewCastling(from, to Square) Move {
	return Move(to) | Move(from)<<6 | kindCastling
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square((m & moveFromMask) >> 6)
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square(m & moveToMask)
}

func (m Move) kind() Move {
	return m & moveKindMask
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.kind() == kindPromotion
}

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool {
	return m.kind() == kindCastling
}

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.kind() == kindEnPassant
}

// Promotion returns the piece type m promotes to. Only meaningful when
// IsPromotion reports true.
func (m Move) Promotion() PieceType {
	return Knight + PieceType((m&movePromoMask)>>14)
}

// IsCapture reports whether playing m against pos removes an enemy
// piece from the board — either by landing on one, or via en passant.
func (m Move) IsCapture(pos *Position) bool {
	return m.IsEnPassant() || !pos.IsEmpty(m.To())
}

// IsQuiet reports whether m is neither a capture nor a promotion —
// the category move ordering treats as lowest priority by default.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

var promotionGlyph = [4]byte{'n', 'b', 'r', 'q'}

// String renders m in UCI long algebraic notation: "e2e4", "e7e8q",
// or "0000" for NoMove.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	out := m.From().String() + m.To().String()
	if m.IsPromotion() {
		out += string(promotionGlyph[m.Promotion()-Knight])
	}
	return out
}

// ParseMove reads a UCI long-algebraic move string against pos,
// inferring the castling/en-passant/promotion flags from the position
// rather than the string itself (UCI move strings don't carry them).
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	switch pt := piece.Type(); {
	case pt == King && abs(int(to)-int(from)) == 2:
		return NewCastling(from, to), nil
	case pt == Pawn && to == pos.EnPassant:
		return NewEnPassant(from, to), nil
	default:
		return NewMove(from, to), nil
	}
}

// MoveList is a fixed-capacity move buffer. Generators write directly
// into a caller-owned MoveList instead of allocating a slice per call,
// since a single search can generate moves millions of times.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList returns an empty MoveList.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently held.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap exchanges the moves at i and j, used by the selection-sort
// move-ordering pick in the search.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice exposes the held moves as a slice over the list's own backing
// array; callers must not retain it past the next Add/Clear.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo captures everything MakeMove changed, so UnmakeMove can
// restore the position exactly rather than recomputing it.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	KingSquare     [2]Square
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
	Valid          bool
}

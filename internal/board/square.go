// Package board implements a bitboard-based chess position: square and
// piece encoding, magic-bitboard attack generation, make/unmake move
// application, legal move generation, and FEN I/O.
package board

import "fmt"

// Square names one of the 64 board squares using little-endian
// rank-file mapping: a1 is 0, h1 is 7, a8 is 56, h8 is 63. File and
// rank both fall out of the numeric value directly (file = value % 8,
// rank = value / 8), which is what makes the bitboard shifts in
// bitboard.go correspond to compass directions on the board.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare is the sentinel for "no square" (an empty bitboard's
	// LSB/MSB, a missing en passant target, and similar absent values).
	NoSquare Square = 64
)

// NewSquare builds a Square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare reads algebraic notation such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

// File returns the square's column, 0 (a) through 7 (h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the square's row, 0 (rank 1) through 7 (rank 8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid reports whether sq is one of the 64 real board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror flips sq top-to-bottom, turning White's view of a square into
// Black's (and vice versa): rank r becomes rank 7-r, file unchanged.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank returns sq's rank counted from c's own side of the
// board, so a pawn on its starting rank always reads as rank 1
// regardless of color.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// String renders sq in algebraic notation, e.g. "e4", or "-" for
// NoSquare and out-of-range values.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

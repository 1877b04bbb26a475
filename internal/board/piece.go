package board

// Color is one side of the game.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opponent's color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is a chess piece kind, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// pieceTypeGlyph holds the lowercase FEN letter for each PieceType,
// indexed the same way as the PieceType constants themselves, with a
// trailing blank for NoPieceType.
var pieceTypeGlyph = [7]byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}

// Char returns the lowercase FEN letter for pt.
func (pt PieceType) Char() byte {
	if pt > NoPieceType {
		return ' '
	}
	return pieceTypeGlyph[pt]
}

// PieceValue gives the standard centipawn value of each piece type,
// indexed by PieceType; kings carry a nominal 20000 and the trailing
// NoPieceType slot carries 0.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece packs a PieceType and a Color into one value: pieceType +
// 6*color, with 12 reserved for "no piece on this square."
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceGlyphs holds the FEN letter for every non-empty Piece value, in
// the same order as the Piece constants: uppercase for White, lowercase
// for Black.
const pieceGlyphs = "PNBRQKpnbrqk"

// NewPiece combines a type and color into a Piece, or NoPiece if
// either input is out of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

// PieceFromChar maps a single FEN piece letter to a Piece, or NoPiece
// if c isn't one of the twelve recognized letters.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceGlyphs); i++ {
		if pieceGlyphs[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}

// Type extracts the PieceType component.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color extracts the Color component.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Value returns the piece's material value in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string(pieceGlyphs[p])
}

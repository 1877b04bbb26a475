package board

// Sliding-piece (bishop/rook) attacks can't use a flat per-square
// lookup table like knights and kings: the set of squares a bishop or
// rook attacks from a given square depends on which squares in between
// are occupied. Magic bitboards solve this by hashing the relevant
// occupancy bits into a dense index with a single multiply-and-shift,
// so the attack set is still a single table lookup at search time —
// the index is just occupancy-dependent instead of square-only.
//
// The magic numbers below were found offline (the classic
// trial-and-error search for a multiplier that hashes every relevant
// occupancy of a square into a collision-free range) and are loaded
// as data, not recomputed at startup.

// Magic holds one square's magic-bitboard parameters.
type Magic struct {
	Mask   Bitboard // relevant occupancy bits (board edges excluded)
	Magic  uint64   // multiplier that hashes Mask's bits to a dense index
	Shift  uint8    // right-shift turning the multiply's high bits into an index
	Offset uint32   // this square's base offset into the shared attack table
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

// initSlidingAttackTables fills in the bishop and rook magic tables.
// Called once from attacks.go's package init.
func initSlidingAttackTables() {
	buildMagicTable(bishopMagicNumbers, bishopMask, bishopAttacksByRay, &bishopMagics, bishopTable[:])
	buildMagicTable(rookMagicNumbers, rookMask, rookAttacksByRay, &rookMagics, rookTable[:])
}

// buildMagicTable populates out/table for one piece type: for every
// square, it enumerates every occupancy subset of that square's
// relevant-occupancy mask, hashes each subset with the matching magic
// number, and stores the ray-cast attack set at the hashed slot.
func buildMagicTable(magicNumbers [64]uint64, maskOf func(Square) Bitboard, attacksByRay func(Square, Bitboard) Bitboard, out *[64]Magic, table []Bitboard) {
	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		mask := maskOf(sq)
		bits := mask.PopCount()

		out[sq] = Magic{
			Mask:   mask,
			Magic:  magicNumbers[sq],
			Shift:  uint8(64 - bits),
			Offset: offset,
		}

		entries := 1 << bits
		for i := 0; i < entries; i++ {
			occ := occupancySubset(i, bits, mask)
			idx := (uint64(occ) * magicNumbers[sq]) >> (64 - bits)
			table[offset+uint32(idx)] = attacksByRay(sq, occ)
		}
		offset += uint32(entries)
	}
}

// bishopMask returns the bishop's relevant-occupancy mask for sq: its
// full diagonal rays with the board edge squares stripped out, since a
// piece on the edge never blocks anything further.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksByRay(sq, Empty) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rookMask returns the rook's relevant-occupancy mask for sq: the rest
// of its rank and file, excluding the board edge (unless the rook
// itself sits on that edge, in which case the mask still stops one
// square short of the far edge it's already on).
func rookMask(sq Square) Bitboard {
	file, rank := sq.File(), sq.Rank()
	var mask Bitboard
	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(NewSquare(f, rank))
		}
	}
	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(NewSquare(file, r))
		}
	}
	return mask
}

// occupancySubset maps index (0..2^bits-1) to one specific subset of
// mask's bits, by consuming mask's set bits from lowest to highest and
// including each one iff the matching bit of index is set. Iterating
// index from 0 to 2^bits-1 therefore visits every subset of mask
// exactly once.
func occupancySubset(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.LSB()
		mask &= mask - 1
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// castRay walks from sq in the direction (df, dr) one square at a
// time, adding each square to the attack set and stopping as soon as
// it adds an occupied one (a slider's attack set includes the first
// blocker it meets, then stops, since the blocker is either capturable
// or not depending on color — that distinction is made by the caller).
func castRay(sq Square, occupied Bitboard, df, dr int) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()
	for f, r := file+df, rank+dr; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+df, r+dr {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	return attacks
}

// bishopAttacksByRay computes a bishop's attack set by casting the
// four diagonal rays directly, without the magic tables. Used only to
// populate those tables at startup.
func bishopAttacksByRay(sq Square, occupied Bitboard) Bitboard {
	return castRay(sq, occupied, 1, 1) |
		castRay(sq, occupied, -1, 1) |
		castRay(sq, occupied, 1, -1) |
		castRay(sq, occupied, -1, -1)
}

// rookAttacksByRay computes a rook's attack set by casting the four
// orthogonal rays directly. Used only to populate the magic tables.
func rookAttacksByRay(sq Square, occupied Bitboard) Bitboard {
	return castRay(sq, occupied, 0, 1) |
		castRay(sq, occupied, 0, -1) |
		castRay(sq, occupied, 1, 0) |
		castRay(sq, occupied, -1, 0)
}

// bishopAttacksFromMagic looks up sq's bishop attack set for the given
// occupancy via its precomputed magic-bitboard index.
func bishopAttacksFromMagic(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return bishopTable[m.Offset+uint32(idx)]
}

// rookAttacksFromMagic looks up sq's rook attack set for the given
// occupancy via its precomputed magic-bitboard index.
func rookAttacksFromMagic(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return rookTable[m.Offset+uint32(idx)]
}

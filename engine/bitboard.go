// Bitboard utilities
// Note bit 0 (low bit) is square A1, bit 63 (hi bit) is square H8

package engine

const A uint64 = 0x0101010101010101
const H uint64 = 0x8080808080808080

func N(bb uint64) uint64 { return bb << 8 }

func S(bb uint64) uint64 { return bb >> 8 }

func W(bb uint64) uint64 { return (bb & ^A) >> 1 }

func E(bb uint64) uint64 { return (bb & ^H) << 1 }

func NFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill << 8)
	fill = fill | (fill << 16)
	fill = fill | (fill << 32)
	return fill
}

func SFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill >> 8)
	fill = fill | (fill >> 16)
	fill = fill | (fill >> 32)
	return fill
}

// FileFill smears a bitboard over its whole files.
func FileFill(bb uint64) uint64 {
	return NFill(bb) | SFill(bb)
}

// FileOf returns the full-file mask containing the given square.
func FileOf(sq uint8) uint64 {
	return A << (sq & 7)
}

// Pawn attacks and defenses
func WPawnAttacks(wPawns uint64) uint64 {
	n := N(wPawns)
	return W(n) | E(n)
}

// Pawn attacks and defenses
func BPawnAttacks(bPawns uint64) uint64 {
	s := S(bPawns)
	return W(s) | E(s)
}

// KingZone is the king's square plus the (up to 8) adjacent squares.
func KingZone(kings uint64) uint64 {
	zone := kings | W(kings) | E(kings)
	return zone | N(zone) | S(zone)
}

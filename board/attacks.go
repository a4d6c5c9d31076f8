package board

import "math/bits"

// Ray directions. Orthogonals come first so rook-like pieces use rays 0..3 and
// bishop-like pieces use rays 4..7.
const (
	dirN = iota
	dirE
	dirS
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
)

// Rank/file step for each direction, in the order above.
var dirSteps = [8][2]int{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// A ray grows towards higher square indices in these directions, so its first
// blocker is the least significant bit.
var dirIncreasing = [8]bool{true, true, false, false, true, true, false, false}

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// rays[sq][dir] is every square from sq in direction dir, excluding sq itself.
var rays [64][8]uint64

func init() {
	initAttackTables()
	initRays()
}

// initAttackTables precomputes attack bitboards for knights, kings, and pawn captures.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for _, off := range knightOffsets {
			if r, f := rank+off[0], file+off[1]; onBoard(r, f) {
				knightMoves[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		for _, off := range dirSteps {
			if r, f := rank+off[0], file+off[1]; onBoard(r, f) {
				kingMoves[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		for _, df := range [2]int{-1, 1} {
			if onBoard(rank+1, file+df) {
				pawnAttacks[White][sq] |= uint64(1) << uint((rank+1)*8+file+df)
			}
			if onBoard(rank-1, file+df) {
				pawnAttacks[Black][sq] |= uint64(1) << uint((rank-1)*8+file+df)
			}
		}
	}
}

// initRays precomputes the eight sliding rays from every square.
func initRays() {
	for sq := 0; sq < 64; sq++ {
		for dir, step := range dirSteps {
			var ray uint64
			for r, f := sq/8+step[0], sq%8+step[1]; onBoard(r, f); r, f = r+step[0], f+step[1] {
				ray |= uint64(1) << uint(r*8+f)
			}
			rays[sq][dir] = ray
		}
	}
}

func onBoard(rank, file int) bool { return rank >= 0 && rank < 8 && file >= 0 && file < 8 }

// firstBlocker returns the nearest occupied square along a ray, or -1.
func firstBlocker(dir int, blockers uint64) int {
	if blockers == 0 {
		return -1
	}
	if dirIncreasing[dir] {
		return bits.TrailingZeros64(blockers)
	}
	return 63 - bits.LeadingZeros64(blockers)
}

// rayAttacks casts a ray from sq and stops at (and includes) the first blocker.
func rayAttacks(sq int, dir int, occ uint64) uint64 {
	ray := rays[sq][dir]
	if first := firstBlocker(dir, ray&occ); first >= 0 {
		ray &^= rays[first][dir]
	}
	return ray
}

// sliderAttacks ORs the rays in [fromDir, toDir).
func sliderAttacks(sq int, occ uint64, fromDir, toDir int) uint64 {
	var attacks uint64
	for dir := fromDir; dir < toDir; dir++ {
		attacks |= rayAttacks(sq, dir, occ)
	}
	return attacks
}

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.isSquareAttackedWithOcc(int(sq), by, p.AllOccupancy())
}

// isSquareAttackedWithOcc probes pawns, knights and the king by table lookup, then
// walks the eight rays and inspects only the first occupied square of each.
func (p *Position) isSquareAttackedWithOcc(s int, by Color, occ uint64) bool {
	byIdx := int(by)

	// Pawn attacks via the reverse mask: a white pawn attacks s if a black pawn on s would attack it
	if pawnAttacks[by.Other()][s]&p.byType[PieceTypePawn][byIdx] != 0 {
		return true
	}
	if knightMoves[s]&p.byType[PieceTypeKnight][byIdx] != 0 {
		return true
	}
	if kingMoves[s]&p.byType[PieceTypeKing][byIdx] != 0 {
		return true
	}

	queens := p.byType[PieceTypeQueen][byIdx]
	rq := p.byType[PieceTypeRook][byIdx] | queens
	bq := p.byType[PieceTypeBishop][byIdx] | queens

	if rq != 0 {
		for dir := dirN; dir <= dirW; dir++ {
			if first := firstBlocker(dir, rays[s][dir]&occ); first >= 0 && (uint64(1)<<uint(first))&rq != 0 {
				return true
			}
		}
	}
	if bq != 0 {
		for dir := dirNE; dir <= dirSW; dir++ {
			if first := firstBlocker(dir, rays[s][dir]&occ); first >= 0 && (uint64(1)<<uint(first))&bq != 0 {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether the specified color's king is currently attacked.
func (p *Position) InCheck(color Color) bool {
	ks := p.KingSquare(color)
	if ks == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ks, color.Other())
}

// Attackers returns a bitboard of the pieces of color 'by' that attack sq.
func (p *Position) Attackers(sq Square, by Color) uint64 {
	s := int(sq)
	byIdx := int(by)
	occ := p.AllOccupancy()
	queens := p.byType[PieceTypeQueen][byIdx]

	att := pawnAttacks[by.Other()][s] & p.byType[PieceTypePawn][byIdx]
	att |= knightMoves[s] & p.byType[PieceTypeKnight][byIdx]
	att |= kingMoves[s] & p.byType[PieceTypeKing][byIdx]
	att |= sliderAttacks(s, occ, dirN, dirW+1) & (p.byType[PieceTypeRook][byIdx] | queens)
	att |= sliderAttacks(s, occ, dirNE, dirSW+1) & (p.byType[PieceTypeBishop][byIdx] | queens)
	return att
}

package board

// PieceValues are the material weights in pawns, indexed by PieceType. The king has no
// material value.
var PieceValues = [7]int{0, 1, 3, 3, 5, 9, 0}

// Material sums the pawn-unit values of the given side's pieces.
func (p *Position) Material(color Color) int {
	total := 0
	for pt := PieceTypePawn; pt < PieceTypeKing; pt++ {
		total += PieceValues[pt] * p.Count(color, pt)
	}
	return total
}

// InsufficientMaterial reports a dead position: king against king, or king and a single
// bishop or knight against a lone king. Other drawn material balances (for example
// bishops on same-colored squares) are not recognized.
func (p *Position) InsufficientMaterial() bool {
	pawnsRooksQueens := 0
	minors := 0
	for _, c := range [2]Color{White, Black} {
		pawnsRooksQueens += p.Count(c, PieceTypePawn) + p.Count(c, PieceTypeRook) + p.Count(c, PieceTypeQueen)
		minors += p.Count(c, PieceTypeKnight) + p.Count(c, PieceTypeBishop)
	}
	return pawnsRooksQueens == 0 && minors <= 1
}

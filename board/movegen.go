package board

var promotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// castleSpec describes one castling option: the right it needs, the king and rook
// squares, the squares that must be empty and the squares the king crosses.
type castleSpec struct {
	right    CastlingRights
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	empty    uint64
	transit  Square
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{CastlingWhiteK, 4, 6, 7, 5, bb(5) | bb(6), 5},
		{CastlingWhiteQ, 4, 2, 0, 3, bb(1) | bb(2) | bb(3), 3},
	},
	Black: {
		{CastlingBlackK, 60, 62, 63, 61, bb(61) | bb(62), 61},
		{CastlingBlackQ, 60, 58, 56, 59, bb(57) | bb(58) | bb(59), 59},
	},
}

// rookCastleSquares maps a castling king destination to the rook's from/to squares.
func rookCastleSquares(kingTo Square) (Square, Square) {
	for _, side := range castleSpecs {
		for _, cs := range side {
			if cs.kingTo == kingTo {
				return cs.rookFrom, cs.rookTo
			}
		}
	}
	return NoSquare, NoSquare
}

// PseudoMoves appends every pseudo-legal move of the side to move to dst. Moves may
// leave the mover's own king in check; the legality filter removes those.
func (p *Position) PseudoMoves(dst []Move) []Move {
	own := p.occupancy[int(p.sideToMove)]
	for own != 0 {
		dst = p.PseudoMovesFrom(Square(popLSB(&own)), dst)
	}
	return dst
}

// PseudoMovesFrom appends the pseudo-legal moves of the piece standing on sq. An empty
// square yields nothing.
func (p *Position) PseudoMovesFrom(sq Square, dst []Move) []Move {
	if !sq.Valid() {
		return dst
	}
	pc := p.pieces[int(sq)]
	if pc == NoPiece {
		return dst
	}
	color := pc.Color()
	own := p.occupancy[int(color)]
	opp := p.occupancy[int(color.Other())]
	occ := own | opp
	from := int(sq)

	switch pc.Type() {
	case PieceTypePawn:
		return p.pawnMoves(sq, pc, dst)
	case PieceTypeKnight:
		return p.appendTargets(sq, pc, knightMoves[from]&^own, dst)
	case PieceTypeBishop:
		return p.appendTargets(sq, pc, sliderAttacks(from, occ, dirNE, dirSW+1)&^own, dst)
	case PieceTypeRook:
		return p.appendTargets(sq, pc, sliderAttacks(from, occ, dirN, dirW+1)&^own, dst)
	case PieceTypeQueen:
		return p.appendTargets(sq, pc, sliderAttacks(from, occ, dirN, dirSW+1)&^own, dst)
	case PieceTypeKing:
		dst = p.appendTargets(sq, pc, kingMoves[from]&^own, dst)
		return p.castlingMoves(sq, pc, dst)
	}
	return dst
}

// appendTargets emits one move per target square, recording any captured piece.
func (p *Position) appendTargets(from Square, pc Piece, targets uint64, dst []Move) []Move {
	for targets != 0 {
		to := Square(popLSB(&targets))
		dst = append(dst, NewMove(from, to, pc, p.pieces[int(to)], NoPiece, FlagNone))
	}
	return dst
}

func (p *Position) pawnMoves(sq Square, pc Piece, dst []Move) []Move {
	color := pc.Color()
	from := int(sq)
	occ := p.AllOccupancy()
	opp := p.occupancy[int(color.Other())]

	forward, startRank, lastRank := 8, 1, 7
	if color == Black {
		forward, startRank, lastRank = -8, 6, 0
	}

	addPawnMove := func(to Square, captured Piece) {
		if to.Rank() == lastRank {
			for _, pt := range promotionTypes {
				dst = append(dst, NewMove(sq, to, pc, captured, NewPiece(color, pt), FlagNone))
			}
			return
		}
		dst = append(dst, NewMove(sq, to, pc, captured, NoPiece, FlagNone))
	}

	one := from + forward
	if one >= 0 && one < 64 && occ&(uint64(1)<<uint(one)) == 0 {
		addPawnMove(Square(one), NoPiece)
		two := one + forward
		if sq.Rank() == startRank && occ&(uint64(1)<<uint(two)) == 0 {
			dst = append(dst, NewMove(sq, Square(two), pc, NoPiece, NoPiece, FlagNone))
		}
	}

	caps := pawnAttacks[color][from]
	targets := caps & opp
	for targets != 0 {
		to := Square(popLSB(&targets))
		addPawnMove(to, p.pieces[int(to)])
	}

	// En passant only exists for the side to move, onto the recorded target
	if color == p.sideToMove && p.enPassantSquare != NoSquare && caps&bb(p.enPassantSquare) != 0 {
		dst = append(dst, NewMove(sq, p.enPassantSquare, pc, NewPiece(color.Other(), PieceTypePawn), NoPiece, FlagEnPassant))
	}
	return dst
}

// castlingMoves emits castling when the right is held, the path between king and rook
// is empty, the king is not in check, and neither the transit nor the destination
// square is attacked.
func (p *Position) castlingMoves(sq Square, pc Piece, dst []Move) []Move {
	color := pc.Color()
	enemy := color.Other()
	occ := p.AllOccupancy()
	for _, cs := range castleSpecs[color] {
		if p.castlingRights&cs.right == 0 || sq != cs.kingFrom {
			continue
		}
		if p.pieces[int(cs.rookFrom)] != NewPiece(color, PieceTypeRook) {
			continue
		}
		if occ&cs.empty != 0 {
			continue
		}
		if p.IsSquareAttacked(cs.kingFrom, enemy) ||
			p.IsSquareAttacked(cs.transit, enemy) ||
			p.IsSquareAttacked(cs.kingTo, enemy) {
			continue
		}
		dst = append(dst, NewMove(cs.kingFrom, cs.kingTo, pc, NoPiece, NoPiece, FlagCastle))
	}
	return dst
}

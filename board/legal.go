package board

// LegalMovesFrom returns the legal moves of the piece on sq. The result is empty when
// the square is empty or holds a piece of the side not to move.
//
// Each pseudo-legal move is made on the live position, the mover's king is tested, and
// the move is unmade again; the position is left exactly as it was.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	if !sq.Valid() {
		return nil
	}
	pc := p.pieces[int(sq)]
	if pc == NoPiece || pc.Color() != p.sideToMove {
		return nil
	}
	var buf [32]Move
	return p.filterLegal(p.PseudoMovesFrom(sq, buf[:0]), nil)
}

// LegalMoves returns every legal move of the side to move.
func (p *Position) LegalMoves() []Move {
	return p.LegalMovesInto(make([]Move, 0, 64))
}

// LegalMovesInto appends the legal moves of the side to move to dst.
func (p *Position) LegalMovesInto(dst []Move) []Move {
	var buf [256]Move
	return p.filterLegal(p.PseudoMoves(buf[:0]), dst)
}

// HasLegalMoves reports whether the side to move has at least one legal move. It stops at
// the first one found.
func (p *Position) HasLegalMoves() bool {
	var buf [64]Move
	own := p.occupancy[int(p.sideToMove)]
	for own != 0 {
		pseudo := p.PseudoMovesFrom(Square(popLSB(&own)), buf[:0])
		for _, m := range pseudo {
			if p.IsLegal(m) {
				return true
			}
		}
	}
	return false
}

// IsLegal reports whether a pseudo-legal move leaves the mover's king safe.
func (p *Position) IsLegal(m Move) bool {
	mover := p.sideToMove
	st := p.MakeMove(m)
	legal := !p.InCheck(mover)
	p.UnmakeMove(m, st)
	return legal
}

func (p *Position) filterLegal(pseudo []Move, dst []Move) []Move {
	for _, m := range pseudo {
		if p.IsLegal(m) {
			dst = append(dst, m)
		}
	}
	return dst
}

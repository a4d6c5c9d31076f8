package board

import "fmt"

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	captured      Piece
	captureSquare Square
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
}

// Captured returns the piece removed by the move, if any.
func (st MoveState) Captured() Piece { return st.captured }

// castleRightsMask[sq] holds the rights that survive a move touching sq.
var castleRightsMask [64]CastlingRights

func init() {
	for i := range castleRightsMask {
		castleRightsMask[i] = CastlingAll
	}
	castleRightsMask[0] &^= CastlingWhiteQ
	castleRightsMask[7] &^= CastlingWhiteK
	castleRightsMask[4] &^= CastlingWhiteK | CastlingWhiteQ
	castleRightsMask[56] &^= CastlingBlackQ
	castleRightsMask[63] &^= CastlingBlackK
	castleRightsMask[60] &^= CastlingBlackK | CastlingBlackQ
}

// MakeMove applies a pseudo-legal move generated for this position and returns the
// record needed to undo it. It does not check king safety; see IsLegal.
func (p *Position) MakeMove(m Move) (st MoveState) {
	st.captureSquare = NoSquare
	st.prevCastling = p.castlingRights
	st.prevEnPassant = p.enPassantSquare
	st.prevHalfmove = p.halfmoveClock
	st.prevFullmove = p.fullmoveNumber
	st.prevZobrist = p.zobristKey

	from := m.From()
	to := m.To()
	moved := p.pieces[int(from)]
	promo := m.PromotionPiece()
	flag := m.Flags()

	// Remove previous en passant from Zobrist if present
	if p.enPassantSquare != NoSquare {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.File()]
	}
	p.enPassantSquare = NoSquare

	// Handle capture (including en passant, where the pawn sits behind 'to')
	capSq := to
	if flag == FlagEnPassant {
		if p.sideToMove == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	if captured := p.removePiece(capSq); captured != NoPiece {
		st.captured = captured
		st.captureSquare = capSq
	}

	// Move the piece (or promote)
	if promo != NoPiece {
		p.removePiece(from)
		p.addPiece(to, promo)
	} else {
		p.movePiece(from, to)
	}

	if flag == FlagCastle {
		rookFrom, rookTo := rookCastleSquares(to)
		p.movePiece(rookFrom, rookTo)
	}

	// Rights are lost when the king or a rook leaves its home square, or a rook is captured on it
	newCR := p.castlingRights & castleRightsMask[int(from)] & castleRightsMask[int(to)]
	if newCR != p.castlingRights {
		p.zobristKey ^= zobristCastle[int(p.castlingRights)]
		p.zobristKey ^= zobristCastle[int(newCR)]
		p.castlingRights = newCR
	}

	// Set en passant square if double pawn push
	if moved.Type() == PieceTypePawn && (to-from == 16 || from-to == 16) {
		ep := (from + to) / 2
		p.enPassantSquare = ep
		p.zobristKey ^= zobristEnPassant[ep.File()]
	}

	if moved.Type() == PieceTypePawn || st.captured != NoPiece {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if p.sideToMove == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = p.sideToMove.Other()
	p.zobristKey ^= zobristSide
	return st
}

// UnmakeMove undoes a previously made move, restoring the board, rights, clocks and key
// exactly.
func (p *Position) UnmakeMove(m Move, st MoveState) {
	p.sideToMove = p.sideToMove.Other()

	from := m.From()
	to := m.To()

	if m.Flags() == FlagCastle {
		rookFrom, rookTo := rookCastleSquares(to)
		p.movePiece(rookTo, rookFrom)
	}

	if promo := m.PromotionPiece(); promo != NoPiece {
		p.removePiece(to)
		p.addPiece(from, NewPiece(p.sideToMove, PieceTypePawn))
	} else {
		p.movePiece(to, from)
	}

	if st.captured != NoPiece {
		p.addPiece(st.captureSquare, st.captured)
	}

	p.castlingRights = st.prevCastling
	p.enPassantSquare = st.prevEnPassant
	p.halfmoveClock = st.prevHalfmove
	p.fullmoveNumber = st.prevFullmove
	p.zobristKey = st.prevZobrist
}

// Apply makes a legal move and returns a closure that undoes it. It panics if the move is
// not legal in this position, which makes it convenient for tests and tools.
func (p *Position) Apply(m Move) func() {
	var legal Move
	for _, lm := range p.LegalMovesFrom(m.From()) {
		if lm.Matches(m) {
			legal = lm
			break
		}
	}
	if legal == NoMove {
		panic(fmt.Sprintf("board: illegal move %s in %s", m, p.FEN()))
	}
	st := p.MakeMove(legal)
	return func() { p.UnmakeMove(legal, st) }
}

// Package board holds the chess position, legal move generation and make/unmake.
package board

import (
	"fmt"
	"math/bits"
)

// Position is the full game state: piece placement, side to move, castling rights,
// en passant target and clocks. A Position is mutated in place by MakeMove/UnmakeMove
// and is not safe for concurrent use.
type Position struct {
	// Piece bitboards indexed by type then color (index 0 = white, 1 = black)
	byType [7][2]uint64

	// Occupancy bitboards for each side
	occupancy [2]uint64

	// The 8x8 board, rank-major from a1
	pieces [64]Piece

	sideToMove Color

	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmoves since the last capture or pawn advance
	halfmoveClock int

	// Starts at 1, incremented after Black's move
	fullmoveNumber int

	zobristKey uint64
}

// NewPosition returns the standard initial position.
func NewPosition() *Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// HalfmoveClock returns the halfmoves since the last pawn move or capture.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the castling permissions still held.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// Hash returns the current Zobrist key.
func (p *Position) Hash() uint64 { return p.zobristKey }

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) Piece { return p.pieces[int(sq)] }

// AllOccupancy returns a bitboard of all occupied squares.
func (p *Position) AllOccupancy() uint64 { return p.occupancy[0] | p.occupancy[1] }

// Count returns how many pieces of the given kind are on the board.
func (p *Position) Count(color Color, pt PieceType) int {
	return bits.OnesCount64(p.byType[pt][int(color)])
}

// KingSquare returns the king square of the given color, or NoSquare if it is missing.
func (p *Position) KingSquare(color Color) Square {
	kingBB := p.byType[PieceTypeKing][int(color)]
	if kingBB == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(kingBB))
}

func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (p *Position) addPiece(sq Square, pc Piece) {
	if pc == NoPiece {
		return
	}
	ci := int(pc.Color())
	p.pieces[int(sq)] = pc
	p.occupancy[ci] |= bb(sq)
	p.byType[pc.Type()][ci] |= bb(sq)
	p.zobristKey ^= zobristPiece[pc][int(sq)]
}

// removePiece clears a square and returns what stood there.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.pieces[int(sq)]
	if pc == NoPiece {
		return NoPiece
	}
	ci := int(pc.Color())
	mask := ^bb(sq)
	p.pieces[int(sq)] = NoPiece
	p.occupancy[ci] &= mask
	p.byType[pc.Type()][ci] &= mask
	p.zobristKey ^= zobristPiece[pc][int(sq)]
	return pc
}

// movePiece relocates the piece on from to the empty square to.
func (p *Position) movePiece(from, to Square) {
	pc := p.pieces[int(from)]
	ci := int(pc.Color())
	move := bb(from) | bb(to)
	p.pieces[int(from)] = NoPiece
	p.pieces[int(to)] = pc
	p.occupancy[ci] ^= move
	p.byType[pc.Type()][ci] ^= move
	p.zobristKey ^= zobristPiece[pc][int(from)] ^ zobristPiece[pc][int(to)]
}

// SetPiece sets a piece on a square, replacing any existing piece. It is meant for
// position setup; use MakeMove during play.
func (p *Position) SetPiece(sq Square, pc Piece) {
	p.removePiece(sq)
	p.addPiece(sq, pc)
}

// ClearSquare removes any piece from the given square.
func (p *Position) ClearSquare(sq Square) { _ = p.removePiece(sq) }

// Validate checks the king invariant and the consistency between the mailbox,
// bitboards and Zobrist key. A non-nil error wraps ErrInvariant.
func (p *Position) Validate() error {
	for _, c := range [2]Color{White, Black} {
		if n := p.Count(c, PieceTypeKing); n != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvariant, c, n)
		}
	}
	var occ [2]uint64
	var byType [7][2]uint64
	for sq := 0; sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc == NoPiece {
			continue
		}
		if pc.Type() == PieceTypeNone || pc.Type() > PieceTypeKing {
			return fmt.Errorf("%w: corrupt piece code %d on %s", ErrInvariant, pc, Square(sq))
		}
		ci := int(pc.Color())
		bit := uint64(1) << uint(sq)
		occ[ci] |= bit
		byType[pc.Type()][ci] |= bit
	}
	if occ != p.occupancy || byType != p.byType {
		return fmt.Errorf("%w: bitboards out of sync with board array", ErrInvariant)
	}
	if p.enPassantSquare != NoSquare && !p.enPassantSquare.Valid() {
		return fmt.Errorf("%w: en passant square %d out of range", ErrInvariant, p.enPassantSquare)
	}
	if p.zobristKey != p.ComputeZobrist() {
		return fmt.Errorf("%w: incremental hash drifted", ErrInvariant)
	}
	return nil
}

// String renders the board as eight ranks of FEN letters, rank 8 first.
func (p *Position) String() string {
	buf := make([]byte, 0, 72)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			buf = append(buf, p.pieces[rank*8+file].String()[0])
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

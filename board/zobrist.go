package board

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [15][64]uint64 // indexed by piece code, then square
var zobristCastle [16]uint64    // one key per castling rights state
var zobristEnPassant [8]uint64  // en passant file
var zobristSide uint64          // Black to move

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so keys are reproducible across runs and in tests
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist calculates the Zobrist key from scratch. The incremental key kept by
// MakeMove/UnmakeMove must always equal this value.
func (p *Position) ComputeZobrist() uint64 {
	var key uint64

	for sq := 0; sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}

	// White to move contributes nothing
	if p.sideToMove == Black {
		key ^= zobristSide
	}

	key ^= zobristCastle[int(p.castlingRights)]

	if p.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[p.enPassantSquare.File()]
	}

	return key
}

// RepetitionKey identifies the position for repetition counting: board contents,
// side to move, castling rights and en passant file. The Zobrist key covers exactly
// those terms, so the two coincide.
func (p *Position) RepetitionKey() uint64 { return p.zobristKey }

package engine

import "chessai/board"

// Score constants, in pawns from White's point of view. No material balance comes near
// MateScore.
const (
	MateScore = 10000
	DrawScore = 0

	// Bounds the full window; no evaluation or mate score reaches it.
	infinity = 32000
)

// Evaluate returns the material balance of the position in pawns (board.PieceValues):
// positive favours White. Kings are not counted.
func Evaluate(pos *board.Position) int {
	return pos.Material(board.White) - pos.Material(board.Black)
}

// IsMateScore reports whether a score encodes a forced mate. Mate scores carry no ply
// distance, so they are exactly ±MateScore.
func IsMateScore(score int) bool {
	return abs(score) == MateScore
}

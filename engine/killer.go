package engine

import "chessai/board"

type KillerStruct struct {
	KillerMoves [MaxPly + 1][2]board.Move
}

// InsertKiller records a quiet cutoff move for the given depth, demoting the previous
// first killer to second.
func (k *KillerStruct) InsertKiller(move board.Move, depth int) {
	if move != k.KillerMoves[depth][0] {
		k.KillerMoves[depth][1] = k.KillerMoves[depth][0]
		k.KillerMoves[depth][0] = move
	}
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for depth := range k.KillerMoves {
		k.KillerMoves[depth][0] = board.NoMove
		k.KillerMoves[depth][1] = board.NoMove
	}
}

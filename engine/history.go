package engine

import "chessai/board"

// HistoryTable scores (from, to) pairs that caused quiet cutoffs anywhere in the tree.
// Scores only grow within a search; ChooseMove clears the table.
type HistoryTable struct {
	scores [64][64]int
}

// Increment the history score for the given move if it caused a beta-cutoff and is quiet.
func (h *HistoryTable) incrementHistoryScore(move board.Move, depth int) {
	h.scores[move.From()][move.To()] += depth * depth
}

// Score returns the accumulated history for a move.
func (h *HistoryTable) Score(move board.Move) int {
	return h.scores[move.From()][move.To()]
}

// Clear the values in the history table.
func (h *HistoryTable) Clear() {
	h.scores = [64][64]int{}
}

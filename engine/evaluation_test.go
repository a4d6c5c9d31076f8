package engine

import (
	"testing"

	"chessai/board"
)

func TestEvaluateInPawns(t *testing.T) {
	if got := Evaluate(board.NewPosition()); got != 0 {
		t.Fatalf("start position: got %d want 0", got)
	}
	if got := Evaluate(board.MustParseFEN("k7/8/8/3q4/8/8/8/K2R4 w - - 0 1")); got != -4 {
		t.Fatalf("rook against queen: got %d want -4", got)
	}
}

func TestMaterialNeverReachesMateScore(t *testing.T) {
	pos := board.MustParseFEN("k7/pppppppp/8/8/8/8/QQQQQQQQ/QQQQRRBK w - - 0 1")
	score := Evaluate(pos)
	if score != 113 {
		t.Fatalf("got %d want 113", score)
	}
	if IsMateScore(score) || score >= MateScore {
		t.Fatalf("material %d mistaken for mate", score)
	}
	if !IsMateScore(MateScore) || !IsMateScore(-MateScore) || IsMateScore(MateScore-1) {
		t.Fatalf("IsMateScore boundaries wrong")
	}
}

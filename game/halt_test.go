package game

import (
	"context"
	"errors"
	"testing"

	"chessai/board"
)

func TestInvariantViolationHaltsGame(t *testing.T) {
	g, err := New(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	g.pos.ClearSquare(board.MustSquare("e8"))

	_, err = g.ChooseMove(context.Background(), board.White, 0)
	if !errors.Is(err, ErrHalted) || !errors.Is(err, board.ErrInvariant) {
		t.Fatalf("ChooseMove on a kingless position: got %v", err)
	}
	if g.Halted() == nil {
		t.Fatalf("game not halted")
	}

	m, _ := board.ParseMove("e2e4")
	if _, err := g.ApplyMove(m); !errors.Is(err, ErrHalted) {
		t.Fatalf("ApplyMove after halt: got %v", err)
	}
	if _, err := g.Undo(); !errors.Is(err, ErrHalted) {
		t.Fatalf("Undo after halt: got %v", err)
	}
	if moves := g.LegalMoves(board.MustSquare("e2")); moves != nil {
		t.Fatalf("LegalMoves after halt: %v", moves)
	}

	g.Reset()
	if g.Halted() != nil {
		t.Fatalf("Reset did not clear the halt")
	}
	if _, err := g.ApplyMove(m); err != nil {
		t.Fatalf("ApplyMove after reset: %v", err)
	}
}

func TestRepetitionTablePopDeletes(t *testing.T) {
	r := repetitionTable{}
	r.push(7)
	r.push(7)
	r.pop(7)
	if r.count(7) != 1 {
		t.Fatalf("count %d", r.count(7))
	}
	r.pop(7)
	if _, ok := r[7]; ok {
		t.Fatalf("zero count left in table")
	}
}

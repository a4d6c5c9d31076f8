package game

import (
	"chessai/board"
)

// State is the coarse game state.
type State uint8

const (
	InProgress State = iota
	Checkmate
	Stalemate
	Draw
)

func (s State) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "in progress"
}

// DrawReason qualifies a Draw.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case ThreefoldRepetition:
		return "threefold repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "none"
}

// Status is InProgress, Checkmate with a Winner, Stalemate, or Draw with a Reason.
type Status struct {
	State  State
	Winner board.Color
	Reason DrawReason
}

// Over reports whether no further moves may be played.
func (s Status) Over() bool { return s.State != InProgress }

func (s Status) String() string {
	switch s.State {
	case Checkmate:
		return s.Winner.String() + " wins by checkmate"
	case Draw:
		return "draw by " + s.Reason.String()
	}
	return s.State.String()
}

// fiftyMoveLimit is the halfmove clock value at which the game is drawn.
const fiftyMoveLimit = 100

// detectStatus classifies pos for the side to move. Checkmate and stalemate come first,
// then threefold repetition, the fifty-move rule and insufficient material.
func detectStatus(pos *board.Position, reps repetitionTable) Status {
	side := pos.SideToMove()
	if !pos.HasLegalMoves() {
		if pos.InCheck(side) {
			return Status{State: Checkmate, Winner: side.Other()}
		}
		return Status{State: Stalemate}
	}
	switch {
	case reps.count(pos.RepetitionKey()) >= 3:
		return Status{State: Draw, Reason: ThreefoldRepetition}
	case pos.HalfmoveClock() >= fiftyMoveLimit:
		return Status{State: Draw, Reason: FiftyMoveRule}
	case pos.InsufficientMaterial():
		return Status{State: Draw, Reason: InsufficientMaterial}
	}
	return Status{State: InProgress}
}

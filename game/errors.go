package game

import (
	"errors"
	"fmt"

	"chessai/board"
)

var (
	ErrRejected      = errors.New("move rejected")
	ErrHalted        = errors.New("game halted")
	ErrNothingToUndo = errors.New("no move to undo")
)

// Reason tells a collaborator why a request was refused. Rejections never change the game.
type Reason uint8

const (
	ReasonIllegalMove Reason = iota + 1
	ReasonEmptySquare
	ReasonOpponentPiece
	ReasonNotYourTurn
	ReasonGameOver
	ReasonPromotionRequired
)

func (r Reason) String() string {
	switch r {
	case ReasonIllegalMove:
		return "illegal move"
	case ReasonEmptySquare:
		return "empty square"
	case ReasonOpponentPiece:
		return "opponent piece"
	case ReasonNotYourTurn:
		return "not your turn"
	case ReasonGameOver:
		return "game over"
	case ReasonPromotionRequired:
		return "promotion piece required"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// RejectionError matches ErrRejected with errors.Is.
type RejectionError struct {
	Reason Reason
	Square board.Square
	Move   board.Move
}

func (e *RejectionError) Error() string {
	if e.Move != board.NoMove {
		return fmt.Sprintf("%s: %s (%s)", ErrRejected, e.Reason, e.Move)
	}
	if e.Square.Valid() {
		return fmt.Sprintf("%s: %s (%s)", ErrRejected, e.Reason, e.Square)
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

func (e *RejectionError) Is(target error) bool { return target == ErrRejected }

func reject(reason Reason, sq board.Square, m board.Move) error {
	return &RejectionError{Reason: reason, Square: sq, Move: m}
}

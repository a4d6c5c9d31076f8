package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"chessai/board"
)

// Strategy picks a move for the side to move. Implementations may mutate pos while
// thinking but must restore it before returning.
type Strategy interface {
	Name() string
	ChooseMove(ctx context.Context, pos *board.Position, budget time.Duration) (board.Move, error)
}

// RandomStrategy plays a uniformly random legal move.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomStrategy) Name() string { return "random" }

func (r *RandomStrategy) ChooseMove(_ context.Context, pos *board.Position, _ time.Duration) (board.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, ErrNoLegalMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}

// GreedyStrategy looks one ply ahead and keeps the first move with the best material
// balance for the mover.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) ChooseMove(_ context.Context, pos *board.Position, _ time.Duration) (board.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, ErrNoLegalMoves
	}
	sign := 1
	if pos.SideToMove() == board.Black {
		sign = -1
	}
	best := moves[0]
	bestScore := -infinity
	for _, m := range moves {
		st := pos.MakeMove(m)
		score := sign * Evaluate(pos)
		pos.UnmakeMove(m, st)
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, nil
}

// SearchStrategy delegates to a Searcher.
type SearchStrategy struct {
	Searcher *Searcher
}

func NewSearchStrategy(cfg Config) (*SearchStrategy, error) {
	s, err := NewSearcher(cfg)
	if err != nil {
		return nil, err
	}
	return &SearchStrategy{Searcher: s}, nil
}

func (s *SearchStrategy) Name() string { return "search" }

func (s *SearchStrategy) ChooseMove(ctx context.Context, pos *board.Position, budget time.Duration) (board.Move, error) {
	res, err := s.Searcher.ChooseMove(ctx, pos, pos.SideToMove(), budget)
	if err != nil {
		return board.NoMove, err
	}
	return res.Move, nil
}

// NewStrategy builds a strategy by name: "random", "greedy" or "search".
func NewStrategy(name string, cfg Config, seed int64) (Strategy, error) {
	switch name {
	case "random":
		return NewRandomStrategy(seed), nil
	case "greedy":
		return GreedyStrategy{}, nil
	case "search":
		return NewSearchStrategy(cfg)
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

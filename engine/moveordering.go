package engine

import "chessai/board"

type scoredMove struct {
	move  board.Move
	score int
}

type moveList struct {
	moves []scoredMove
}

// Ordering weights. The MVV-LVA term uses board.PieceValues (pawn 1 ... queen 9, king 0).
const (
	promotionBonus     = 50
	centerBonus        = 1
	firstKillerOffset  = 1000
	secondKillerOffset = 800
)

// centralSquares is the 4x4 block c3-f6.
const centralSquares uint64 = 0x00003C3C3C3C0000

// mvvLva scores a capture as 10*victim - attacker, so capturing a queen with a pawn
// (89) beats capturing a pawn with a queen (1).
func mvvLva(victim, attacker board.PieceType) int {
	return 10*board.PieceValues[victim] - board.PieceValues[attacker]
}

// scoreMove combines MVV-LVA, promotion and centre bonuses, history, and killer bonuses
// for the given depth.
func (s *Searcher) scoreMove(m board.Move, depth int) int {
	score := 0
	if captured := m.CapturedPiece(); captured != board.NoPiece {
		score += mvvLva(captured.Type(), m.MovedPiece().Type())
	}
	if m.PromotionPiece() != board.NoPiece {
		score += promotionBonus
	}
	if centralSquares&(uint64(1)<<uint(m.To())) != 0 {
		score += centerBonus
	}
	if s.cfg.UseHistory {
		score += s.history.Score(m)
	}
	if s.cfg.UseKillerMoves {
		switch m {
		case s.killers.KillerMoves[depth][0]:
			score += firstKillerOffset
		case s.killers.KillerMoves[depth][1]:
			score += secondKillerOffset
		}
	}
	return score
}

func (s *Searcher) scoreMovesList(moves []board.Move, depth int, dst []scoredMove) moveList {
	list := moveList{moves: dst[:0]}
	for _, m := range moves {
		list.moves = append(list.moves, scoredMove{move: m, score: s.scoreMove(m, depth)})
	}
	return list
}

// Ordering the moves one at a time, at index given. Ties keep the earlier move first.
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}
	if bestIndex == currIndex {
		return
	}
	// Shift rather than swap so equal-scored moves keep their generation order
	best := moves.moves[bestIndex]
	copy(moves.moves[currIndex+1:bestIndex+1], moves.moves[currIndex:bestIndex])
	moves.moves[currIndex] = best
}

// OrderMoves returns the moves sorted by descending ordering score as the searcher would
// try them at the given depth.
func (s *Searcher) OrderMoves(moves []board.Move, depth int) []board.Move {
	list := s.scoreMovesList(moves, Clamp(depth, 0, MaxPly), nil)
	out := make([]board.Move, len(list.moves))
	for i := range list.moves {
		orderNextMove(i, &list)
		out[i] = list.moves[i].move
	}
	return out
}

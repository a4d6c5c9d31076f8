// Package engine chooses moves with iterative-deepening alpha-beta search.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chessai/board"
)

var (
	ErrNoLegalMoves  = errors.New("no legal moves")
	ErrNotSideToMove = errors.New("color is not the side to move")
)

// Iteration describes one completed iterative-deepening depth.
type Iteration struct {
	Depth   int
	Score   int
	Move    board.Move
	PV      []board.Move
	Nodes   uint64
	Elapsed time.Duration
}

// Result is the outcome of a root search. Move always holds a legal move; Depth is the
// deepest depth that completed, or 0 when not even depth 1 finished in time.
type Result struct {
	Move    board.Move
	Score   int
	Depth   int
	PV      []board.Move
	Stats   SearchStats
	Elapsed time.Duration
}

// Searcher runs iterative-deepening alpha-beta on a position it borrows for the
// duration of ChooseMove. Positions are mutated with make/unmake and restored before
// returning. A Searcher is not safe for concurrent use.
type Searcher struct {
	cfg Config
	log zerolog.Logger

	tt          *TransTable
	killers     KillerStruct
	history     HistoryTable
	timeHandler TimeHandler

	pos     *board.Position
	stats   SearchStats
	stopped bool

	// Per-ply move buffers, reused across nodes
	legalBufs [MaxPly + 1][]board.Move
	orderBufs [MaxPly + 1][]scoredMove
}

func NewSearcher(cfg Config) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Searcher{cfg: cfg, log: cfg.Logger}
	if cfg.UseTranspositionTable {
		s.tt = newTransTable(cfg.TTEntries)
	}
	for i := range s.legalBufs {
		s.legalBufs[i] = make([]board.Move, 0, 64)
		s.orderBufs[i] = make([]scoredMove, 0, 64)
	}
	return s, nil
}

// Stats returns the counters of the most recent search.
func (s *Searcher) Stats() SearchStats { return s.stats }

// Reset clears every table, as at the start of a new game.
func (s *Searcher) Reset() {
	if s.tt != nil {
		s.tt.clear()
	}
	s.killers.ClearKillers()
	s.history.Clear()
	s.stats = SearchStats{}
}

// ChooseMove searches pos for the side 'color', which must be the side to move, until
// budget elapses, ctx is done or the configured depth ceiling is reached. A budget of
// zero means no time limit. The returned move comes from the deepest fully completed
// depth; cancellation is not an error.
//
// If the position is not restored exactly after the search the error wraps
// board.ErrInvariant and the transposition table is discarded.
func (s *Searcher) ChooseMove(ctx context.Context, pos *board.Position, color board.Color, budget time.Duration) (Result, error) {
	if color != pos.SideToMove() {
		return Result{}, fmt.Errorf("%w: %s to move, asked for %s", ErrNotSideToMove, pos.SideToMove(), color)
	}
	if err := pos.Validate(); err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}

	rootMoves := pos.LegalMoves()
	if len(rootMoves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	s.Reset()
	s.pos = pos
	s.stopped = false
	s.timeHandler.StartTime(ctx, budget)
	defer func() { s.pos = nil }()

	startHash := pos.Hash()
	startFEN := pos.FEN()

	// Fallback when depth 1 cannot complete: the first move in ordering
	res := Result{Move: s.OrderMoves(rootMoves, 1)[0]}

	prevScore := 0
	for depth := 1; depth <= s.cfg.MaxDepth; depth++ {
		if depth > 1 && s.timeHandler.TimeStatus() {
			break
		}
		score, move, ok := s.aspirationSearch(depth, prevScore)
		if !ok {
			s.log.Debug().Int("depth", depth).Dur("elapsed", s.timeHandler.Elapsed()).Msg("search aborted, keeping last completed depth")
			break
		}
		prevScore = score
		res.Move = move
		res.Score = score
		res.Depth = depth

		it := Iteration{
			Depth:   depth,
			Score:   score,
			Move:    move,
			PV:      s.principalVariation(move, depth),
			Nodes:   s.stats.Nodes,
			Elapsed: s.timeHandler.Elapsed(),
		}
		res.PV = it.PV
		s.log.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", it.Nodes).
			Dur("elapsed", it.Elapsed).
			Str("move", move.String()).
			Str("pv", FormatPV(it.PV)).
			Msg("search iteration")
		if s.cfg.OnIteration != nil {
			s.cfg.OnIteration(it)
		}

		// A mate found at this depth cannot be improved by searching deeper
		if IsMateScore(score) {
			break
		}
	}

	res.Stats = s.stats
	res.Elapsed = s.timeHandler.Elapsed()

	if pos.Hash() != startHash || pos.FEN() != startFEN {
		s.discardTT()
		return res, fmt.Errorf("%w: position not restored after search", board.ErrInvariant)
	}
	if err := pos.Validate(); err != nil {
		s.discardTT()
		return res, fmt.Errorf("search: %w", err)
	}
	return res, nil
}

func (s *Searcher) discardTT() {
	if s.tt != nil {
		s.tt = newTransTable(s.tt.Len())
	}
	s.log.Error().Msg("transposition table discarded after invariant violation")
}

// aspirationSearch searches a window around the previous depth's score, doubling it on
// every miss. After AspirationMaxRetries misses it falls back to the full window, so a
// miss never changes the result. ok is false when the search was stopped.
func (s *Searcher) aspirationSearch(depth int, prevScore int) (score int, move board.Move, ok bool) {
	if depth > 1 && s.cfg.UseAspiration {
		window := s.cfg.AspirationWindow
		for retry := 0; retry <= s.cfg.AspirationMaxRetries; retry++ {
			alpha, beta := prevScore-window, prevScore+window
			score, move = s.searchRoot(depth, alpha, beta)
			if s.stopped {
				return 0, board.NoMove, false
			}
			if score > alpha && score < beta {
				return score, move, true
			}
			s.stats.AspirationResearches++
			s.log.Debug().Int("depth", depth).Int("score", score).Int("alpha", alpha).Int("beta", beta).Msg("aspiration window missed")
			window *= 2
		}
		s.stats.FullWindowFallbacks++
	}
	score, move = s.searchRoot(depth, -infinity, infinity)
	if s.stopped {
		return 0, board.NoMove, false
	}
	return score, move, true
}

// searchRoot is minimax at ply 0 that also tracks which move produced the best score.
// The transposition table is not probed here so a move is always produced.
func (s *Searcher) searchRoot(depth int, alpha, beta int) (int, board.Move) {
	maximizing := s.pos.SideToMove() == board.White
	alphaOrig, betaOrig := alpha, beta

	moves := s.pos.LegalMovesInto(s.legalBufs[0][:0])
	list := s.scoreMovesList(moves, depth, s.orderBufs[0])

	bestScore := infinity
	if maximizing {
		bestScore = -infinity
	}
	var bestMove board.Move
	for i := range list.moves {
		orderNextMove(i, &list)
		m := list.moves[i].move

		st := s.pos.MakeMove(m)
		score := s.minimax(depth-1, !maximizing, alpha, beta, 1)
		s.pos.UnmakeMove(m, st)
		if s.stopped {
			return 0, board.NoMove
		}

		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, m
			}
			alpha = Max(alpha, score)
		} else {
			if score < bestScore {
				bestScore, bestMove = score, m
			}
			beta = Min(beta, score)
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			s.recordCutoff(m, depth)
			break
		}
	}
	s.store(s.pos.Hash(), depth, bestMove, bestScore, alphaOrig, betaOrig)
	return bestScore, bestMove
}

// minimax returns the value of the position from White's point of view, searched to
// the given depth. The maximizing side is White. When the search is stopped the
// return value is meaningless and every caller unwinds at once.
func (s *Searcher) minimax(depth int, maximizing bool, alpha, beta int, ply int) int {
	s.stats.Nodes++
	if s.stats.Nodes&s.cfg.NodePollMask == 0 && s.timeHandler.TimeStatus() {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}

	hash := s.pos.Hash()
	if s.tt != nil {
		s.stats.TTProbes++
		if e, found := s.tt.getEntry(hash); found {
			s.stats.TTHits++
			usable, score, a, b := useEntry(e, depth, alpha, beta)
			if usable {
				s.stats.TTCutoffs++
				return score
			}
			alpha, beta = a, b
		}
	}

	if depth <= 0 || ply >= MaxPly {
		score := Evaluate(s.pos)
		s.store(hash, 0, board.NoMove, score, -infinity, infinity)
		return score
	}

	moves := s.pos.LegalMovesInto(s.legalBufs[ply][:0])
	if len(moves) == 0 {
		score := DrawScore
		if s.pos.InCheck(s.pos.SideToMove()) {
			// The side to move is mated
			score = MateScore
			if maximizing {
				score = -MateScore
			}
		}
		s.store(hash, depth, board.NoMove, score, -infinity, infinity)
		return score
	}

	// Bounds are classified against the window this node actually searched
	alphaOrig, betaOrig := alpha, beta

	list := s.scoreMovesList(moves, depth, s.orderBufs[ply])
	bestScore := infinity
	if maximizing {
		bestScore = -infinity
	}
	var bestMove board.Move
	for i := range list.moves {
		orderNextMove(i, &list)
		m := list.moves[i].move

		st := s.pos.MakeMove(m)
		score := s.minimax(depth-1, !maximizing, alpha, beta, ply+1)
		s.pos.UnmakeMove(m, st)
		if s.stopped {
			return 0
		}

		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, m
			}
			alpha = Max(alpha, score)
		} else {
			if score < bestScore {
				bestScore, bestMove = score, m
			}
			beta = Min(beta, score)
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			s.recordCutoff(m, depth)
			break
		}
	}

	s.store(hash, depth, bestMove, bestScore, alphaOrig, betaOrig)
	return bestScore
}

// recordCutoff feeds a quiet cutoff move to the killer and history tables.
func (s *Searcher) recordCutoff(m board.Move, depth int) {
	if m.IsCapture() {
		return
	}
	if s.cfg.UseKillerMoves {
		s.killers.InsertKiller(m, depth)
	}
	if s.cfg.UseHistory {
		s.history.incrementHistoryScore(m, depth)
	}
}

// store tags the score as exact, lower or upper bound relative to [alpha, beta].
func (s *Searcher) store(hash uint64, depth int, move board.Move, score int, alpha, beta int) {
	if s.tt == nil {
		return
	}
	var flag int8 = ExactFlag
	if score <= alpha {
		flag = AlphaFlag
	} else if score >= beta {
		flag = BetaFlag
	}
	s.tt.storeEntry(hash, depth, move, score, flag)
}

// principalVariation follows transposition-table moves from the root, starting with
// the chosen root move, and returns at most maxLen moves.
func (s *Searcher) principalVariation(root board.Move, maxLen int) []board.Move {
	pv := []board.Move{root}
	if s.tt == nil {
		return pv
	}
	type made struct {
		m  board.Move
		st board.MoveState
	}
	var line []made
	seen := map[uint64]bool{s.pos.Hash(): true}

	line = append(line, made{root, s.pos.MakeMove(root)})
	for len(pv) < maxLen {
		hash := s.pos.Hash()
		if seen[hash] {
			break
		}
		seen[hash] = true
		e, found := s.tt.getEntry(hash)
		if !found || e.Move == board.NoMove {
			break
		}
		next := board.NoMove
		for _, m := range s.pos.LegalMovesFrom(e.Move.From()) {
			if m == e.Move {
				next = m
				break
			}
		}
		if next == board.NoMove {
			break
		}
		pv = append(pv, next)
		line = append(line, made{next, s.pos.MakeMove(next)})
	}
	for i := len(line) - 1; i >= 0; i-- {
		s.pos.UnmakeMove(line[i].m, line[i].st)
	}
	return pv
}

// PrincipalVariation returns the expected line of play after a search of pos, following
// the transposition table from the chosen move.
func (s *Searcher) PrincipalVariation(pos *board.Position, res Result, maxLen int) []board.Move {
	if res.Move == board.NoMove || maxLen < 1 {
		return nil
	}
	s.pos = pos
	defer func() { s.pos = nil }()
	return s.principalVariation(res.Move, maxLen)
}

// FormatPV joins moves in coordinate notation.
func FormatPV(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

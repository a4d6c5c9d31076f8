// Package game is the collaborator-facing chess session: it validates requested moves,
// keeps the move history and repetition counts, reports check and game end, and asks the
// engine for moves.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"chessai/board"
	"chessai/engine"
)

// Options configures a Game. A zero Search config is replaced by engine.DefaultConfig and
// the searcher always logs through Logger.
type Options struct {
	Logger zerolog.Logger
	Search engine.Config
}

func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop(), Search: engine.DefaultConfig()}
}

// MoveOutcome describes a committed move.
type MoveOutcome struct {
	Move     board.Move
	Captured board.Piece
	Special  board.MoveKind
	Check    bool
	Status   Status
}

type played struct {
	move  board.Move
	state board.MoveState
	key   uint64
}

// Game owns one position and everything derived from it. It is not safe for concurrent
// use.
type Game struct {
	log      zerolog.Logger
	searcher *engine.Searcher

	startFEN string
	pos      *board.Position
	history  []played
	reps     repetitionTable
	status   Status
	lastRun  engine.Result

	// halted holds the invariant violation that stopped the game, if any
	halted error
}

// New starts a game from the standard initial position.
func New(opts Options) (*Game, error) {
	return NewFromFEN(board.FENStartPos, opts)
}

// NewFromFEN starts a game from an arbitrary position. Reset returns to it.
func NewFromFEN(fen string, opts Options) (*Game, error) {
	if _, err := board.ParseFEN(fen); err != nil {
		return nil, err
	}
	if opts.Search.MaxDepth == 0 {
		opts.Search = engine.DefaultConfig()
	}
	opts.Search.Logger = opts.Logger
	s, err := engine.NewSearcher(opts.Search)
	if err != nil {
		return nil, err
	}
	g := &Game{log: opts.Logger, searcher: s, startFEN: fen}
	g.Reset()
	return g, nil
}

// Reset restores the starting position and clears history, repetition counts, search
// tables and any halt.
func (g *Game) Reset() {
	g.pos = board.MustParseFEN(g.startFEN)
	g.history = g.history[:0]
	g.reps = repetitionTable{}
	g.reps.push(g.pos.RepetitionKey())
	g.searcher.Reset()
	g.lastRun = engine.Result{}
	g.halted = nil
	g.status = detectStatus(g.pos, g.reps)
	g.log.Debug().Str("fen", g.startFEN).Msg("game reset")
}

// LegalMoves returns the legal moves of the piece on sq. It is empty when the square is
// empty, holds an opponent piece, or the game has ended.
func (g *Game) LegalMoves(sq board.Square) []board.Move {
	if g.halted != nil || g.status.Over() || !sq.Valid() {
		return nil
	}
	return g.pos.LegalMovesFrom(sq)
}

// ApplyMove plays m for the side to move. m may be a move returned by LegalMoves or a bare
// move from board.ParseMove; it is matched on from, to and promotion piece type. A
// refused move returns a *RejectionError and leaves the game untouched.
func (g *Game) ApplyMove(m board.Move) (MoveOutcome, error) {
	if g.halted != nil {
		return MoveOutcome{}, g.halted
	}
	if g.status.Over() {
		return MoveOutcome{}, reject(ReasonGameOver, m.From(), m)
	}
	from := m.From()
	pc := g.pos.PieceAt(from)
	if pc == board.NoPiece {
		return MoveOutcome{}, reject(ReasonEmptySquare, from, m)
	}
	if pc.Color() != g.pos.SideToMove() {
		return MoveOutcome{}, reject(ReasonOpponentPiece, from, m)
	}

	legal := board.NoMove
	promotes := false
	for _, lm := range g.pos.LegalMovesFrom(from) {
		if lm.To() != m.To() {
			continue
		}
		if lm.Matches(m) {
			legal = lm
			break
		}
		promotes = promotes || lm.PromotionPiece() != board.NoPiece
	}
	if legal == board.NoMove {
		if promotes && m.PromotionPiece() == board.NoPiece {
			return MoveOutcome{}, reject(ReasonPromotionRequired, from, m)
		}
		return MoveOutcome{}, reject(ReasonIllegalMove, from, m)
	}

	st := g.pos.MakeMove(legal)
	if err := g.pos.Validate(); err != nil {
		g.pos.UnmakeMove(legal, st)
		return MoveOutcome{}, g.halt(err)
	}
	key := g.pos.RepetitionKey()
	g.history = append(g.history, played{move: legal, state: st, key: key})
	g.reps.push(key)
	g.status = detectStatus(g.pos, g.reps)

	out := MoveOutcome{
		Move:     legal,
		Captured: st.Captured(),
		Special:  legal.Kind(),
		Check:    g.pos.InCheck(g.pos.SideToMove()),
		Status:   g.status,
	}
	g.log.Info().
		Str("move", legal.String()).
		Stringer("kind", out.Special).
		Bool("check", out.Check).
		Int("ply", len(g.history)).
		Msg("move played")
	if g.status.Over() {
		g.log.Info().Stringer("status", g.status).Str("fen", g.pos.FEN()).Msg("game over")
	}
	return out, nil
}

// Undo takes back the last move.
func (g *Game) Undo() (board.Move, error) {
	if g.halted != nil {
		return board.NoMove, g.halted
	}
	if len(g.history) == 0 {
		return board.NoMove, ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.reps.pop(last.key)
	g.pos.UnmakeMove(last.move, last.state)
	g.status = detectStatus(g.pos, g.reps)
	g.log.Debug().Str("move", last.move.String()).Msg("move taken back")
	return last.move, nil
}

// ChooseMove asks the engine for a move for color, which must be the side to move. The
// move is not played. budget zero means the configured depth ceiling alone bounds the
// search.
func (g *Game) ChooseMove(ctx context.Context, color board.Color, budget time.Duration) (board.Move, error) {
	if g.halted != nil {
		return board.NoMove, g.halted
	}
	if g.status.Over() {
		return board.NoMove, reject(ReasonGameOver, board.NoSquare, board.NoMove)
	}
	if color != g.pos.SideToMove() {
		return board.NoMove, reject(ReasonNotYourTurn, board.NoSquare, board.NoMove)
	}
	res, err := g.searcher.ChooseMove(ctx, g.pos, color, budget)
	if err != nil {
		if errors.Is(err, board.ErrInvariant) {
			return board.NoMove, g.halt(err)
		}
		return board.NoMove, err
	}
	g.lastRun = res
	g.log.Debug().
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		EmbedObject(res.Stats).
		Dur("elapsed", res.Elapsed).
		Msg("engine move chosen")
	return res.Move, nil
}

// halt stops the game after an invariant violation and drops the search tables. Every
// later call except Reset returns the returned error.
func (g *Game) halt(cause error) error {
	g.halted = fmt.Errorf("%w: %w", ErrHalted, cause)
	g.searcher.Reset()
	g.log.Error().Err(cause).Str("fen", g.pos.FEN()).Msg("game halted")
	return g.halted
}

// IsInCheck reports whether color's king is attacked.
func (g *Game) IsInCheck(color board.Color) bool { return g.pos.InCheck(color) }

// Status returns the state after the last committed move.
func (g *Game) Status() Status { return g.status }

// Halted returns the error that halted the game, or nil.
func (g *Game) Halted() error { return g.halted }

// SideToMove returns the color to play.
func (g *Game) SideToMove() board.Color { return g.pos.SideToMove() }

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position { return g.pos.Clone() }

// FEN returns the current position in Forsyth-Edwards notation.
func (g *Game) FEN() string { return g.pos.FEN() }

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	out := make([]board.Move, len(g.history))
	for i, p := range g.history {
		out[i] = p.move
	}
	return out
}

// Captured returns the pieces color has taken, in the order they were taken.
func (g *Game) Captured(color board.Color) []board.Piece {
	var out []board.Piece
	for _, p := range g.history {
		if c := p.state.Captured(); c != board.NoPiece && c.Color() != color {
			out = append(out, c)
		}
	}
	return out
}

// LastSearch returns the full result of the most recent ChooseMove.
func (g *Game) LastSearch() engine.Result { return g.lastRun }

// RepetitionCount returns how many times the current position has occurred.
func (g *Game) RepetitionCount() int { return g.reps.count(g.pos.RepetitionKey()) }

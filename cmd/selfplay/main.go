package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessai/board"
	"chessai/engine"
	"chessai/game"
)

func main() {
	whiteFlag := flag.String("white", "search", "white strategy: random, greedy or search")
	blackFlag := flag.String("black", "greedy", "black strategy: random, greedy or search")
	fenFlag := flag.String("fen", board.FENStartPos, "starting position")
	gamesFlag := flag.Int("games", 1, "number of games to play")
	maxPlies := flag.Int("maxplies", 300, "adjudicate a draw after this many plies")
	budgetFlag := flag.Duration("budget", 200*time.Millisecond, "thinking time per search move")
	depthFlag := flag.Int("depth", 0, "search depth ceiling (0 = config default)")
	configFlag := flag.String("config", "", "JSON search configuration overlaid on the defaults")
	seedFlag := flag.Int64("seed", 1, "seed for the random strategy")
	verify := flag.Bool("verify", false, "replay every move through notnil/chess and compare")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	cfg := engine.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = engine.LoadConfig(*configFlag); err != nil {
			log.Fatal().Err(err).Msg("cannot load config")
		}
	}
	if *depthFlag > 0 {
		cfg.MaxDepth = *depthFlag
	}

	var players [2]engine.Strategy
	for i, name := range []string{*whiteFlag, *blackFlag} {
		st, err := engine.NewStrategy(name, cfg, *seedFlag+int64(i))
		if err != nil {
			log.Fatal().Err(err).Msg("cannot build strategy")
		}
		players[i] = st
	}

	opts := game.Options{Logger: log.Level(zerolog.WarnLevel), Search: cfg}
	if *verbose {
		opts.Logger = log
	}
	g, err := game.NewFromFEN(*fenFlag, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start game")
	}

	var score [3]int // white wins, black wins, draws
	for n := 1; n <= *gamesFlag; n++ {
		g.Reset()
		status, err := playOne(context.Background(), g, players, *budgetFlag, *maxPlies, *verify, *fenFlag)
		if err != nil {
			log.Fatal().Err(err).Int("game", n).Str("fen", g.FEN()).Msg("game aborted")
		}
		switch {
		case status.State == game.Checkmate && status.Winner == board.White:
			score[0]++
		case status.State == game.Checkmate:
			score[1]++
		default:
			score[2]++
		}
		log.Info().Int("game", n).Int("plies", len(g.History())).Stringer("result", status).Msg("game finished")
	}
	fmt.Printf("%s (white) %d - %d %s (black), %d drawn\n",
		players[0].Name(), score[0], score[1], players[1].Name(), score[2])
}

func playOne(ctx context.Context, g *game.Game, players [2]engine.Strategy, budget time.Duration, maxPlies int, verify bool, fen string) (game.Status, error) {
	var oracle *chess.Game
	if verify {
		opt, err := chess.FEN(fen)
		if err != nil {
			return game.Status{}, fmt.Errorf("oracle: %w", err)
		}
		oracle = chess.NewGame(opt)
	}

	for ply := 0; ply < maxPlies; ply++ {
		if g.Status().Over() {
			return g.Status(), verifyTerminal(g, oracle)
		}
		if oracle != nil {
			if err := verifyMoveCount(g, oracle); err != nil {
				return game.Status{}, err
			}
		}

		player := players[g.SideToMove()]
		m, err := player.ChooseMove(ctx, g.Position(), budget)
		if err != nil {
			return game.Status{}, fmt.Errorf("%s: %w", player.Name(), err)
		}
		if _, err := g.ApplyMove(m); err != nil {
			return game.Status{}, err
		}
		if oracle != nil {
			if err := oracleMove(oracle, m.String()); err != nil {
				return game.Status{}, err
			}
		}
	}
	if g.Status().Over() {
		return g.Status(), verifyTerminal(g, oracle)
	}
	return game.Status{State: game.Draw}, nil
}

func verifyMoveCount(g *game.Game, oracle *chess.Game) error {
	ours := 0
	for sq := board.Square(0); sq < 64; sq++ {
		ours += len(g.LegalMoves(sq))
	}
	if theirs := len(oracle.ValidMoves()); ours != theirs {
		return fmt.Errorf("legal move count %d, notnil/chess has %d", ours, theirs)
	}
	return nil
}

func oracleMove(oracle *chess.Game, uci string) error {
	for _, m := range oracle.ValidMoves() {
		if m.String() == uci {
			return oracle.Move(m)
		}
	}
	return fmt.Errorf("notnil/chess does not allow %s", uci)
}

func verifyTerminal(g *game.Game, oracle *chess.Game) error {
	if oracle == nil {
		return nil
	}
	their := oracle.Position().Status()
	switch g.Status().State {
	case game.Checkmate:
		if their != chess.Checkmate {
			return fmt.Errorf("checkmate not confirmed by notnil/chess (%v)", their)
		}
	case game.Stalemate:
		if their != chess.Stalemate {
			return fmt.Errorf("stalemate not confirmed by notnil/chess (%v)", their)
		}
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"chessai/board"
	"chessai/engine"
)

func main() {
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", board.FENStartPos, "FEN to search")
	budgetFlag := flag.Duration("budget", 0, "time budget per search (0 = depth only)")
	configFlag := flag.String("config", "", "JSON search configuration overlaid on the defaults")
	profFlag := flag.String("profile", "", "profile the run: cpu or mem")
	pvLen := flag.Int("pvlen", 8, "longest principal variation to print")
	verbose := flag.Bool("v", false, "log every completed depth")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	// run returns instead of exiting so deferred profile writers always flush
	if err := run(log, *depthFlag, *repeatFlag, *fenFlag, *budgetFlag, *configFlag, *profFlag, *pvLen); err != nil {
		log.Error().Err(err).Msg("searchbench failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, depth, repeat int, fen string, budget time.Duration, configPath, prof string, pvLen int) error {
	cfg := engine.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(configPath); err != nil {
			return err
		}
	}
	cfg.MaxDepth = depth
	cfg.Logger = log

	searcher, err := engine.NewSearcher(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", prof)
	}

	log.Info().Str("fen", fen).Int("depth", depth).Int("repeat", repeat).Msg("searchbench")

	var total engine.SearchStats
	startAll := time.Now()
	for i := 0; i < repeat; i++ {
		// Fresh position for each run
		pos, err := board.ParseFEN(fen)
		if err != nil {
			return fmt.Errorf("cannot parse position: %w", err)
		}
		res, err := searcher.ChooseMove(context.Background(), pos, pos.SideToMove(), budget)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		total.Add(res.Stats)
		fmt.Printf("iteration %d: bestmove %s score %d depth %d time=%v\n", i+1, res.Move, res.Score, res.Depth, res.Elapsed)
		fmt.Printf("  pv %s\n", engine.FormatPV(searcher.PrincipalVariation(pos, res, pvLen)))
		fmt.Printf("  %s\n", res.Stats)
	}
	elapsed := time.Since(startAll)
	log.Info().EmbedObject(total).Dur("total", elapsed).
		Float64("nps", float64(total.Nodes)/elapsed.Seconds()).Msg("done")
	return nil
}

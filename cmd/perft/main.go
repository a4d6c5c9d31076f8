package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	"chessai/board"
)

type options struct {
	fen    string
	depth  int
	divide bool
	verify bool
	repeat int
	label  string
	prof   string
}

func main() {
	var o options
	flag.StringVar(&o.fen, "fen", board.FENStartPos, "FEN string (defaults to initial position)")
	flag.IntVar(&o.depth, "depth", 0, "Perft depth (required)")
	flag.BoolVar(&o.divide, "divide", false, "Print per-move node counts at root")
	flag.BoolVar(&o.verify, "verify", false, "Cross-check every root move against dragontoothmg and GooseEngineMG")
	flag.IntVar(&o.repeat, "repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	flag.StringVar(&o.label, "label", "", "Optional label prefix for one-line output")
	flag.StringVar(&o.prof, "profile", "", "Profile the run: cpu or mem")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	// run returns instead of exiting so deferred profile writers always flush
	if err := run(o, log); err != nil {
		log.Error().Err(err).Msg("perft failed")
		os.Exit(1)
	}
}

var errMismatch = errors.New("perft differs from reference generator")

func run(o options, log zerolog.Logger) error {
	if o.depth <= 0 {
		return fmt.Errorf("-depth must be > 0, got %d", o.depth)
	}
	pos, err := board.ParseFEN(o.fen)
	if err != nil {
		return fmt.Errorf("cannot parse position: %w", err)
	}

	switch o.prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", o.prof)
	}

	if o.divide || o.verify {
		return divide(o, pos, log)
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < o.repeat; i++ {
		totalNodes += board.Perft(pos, o.depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", o.label, o.depth, totalNodes, elapsed, nps)
	return nil
}

func divide(o options, pos *board.Position, log zerolog.Logger) error {
	div := board.PerftDivide(pos, o.depth)
	references := map[string]map[string]uint64{}
	if o.verify {
		references["dragontoothmg"] = dragontoothDivide(o.fen, o.depth)
		gd, err := gooseDivide(o.fen, o.depth)
		if err != nil {
			return err
		}
		references["goosemg"] = gd
	}

	// Sort moves for stable output
	moves := maps.Keys(div)
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
	var sum uint64
	for _, m := range moves {
		sum += div[m]
		fmt.Printf("%s: %d\n", m, div[m])
	}
	fmt.Printf("Total: %d\n", sum)

	mismatches := 0
	for name, ref := range references {
		for _, m := range moves {
			want, ok := ref[m.String()]
			delete(ref, m.String())
			if !ok || want != div[m] {
				mismatches++
				log.Warn().Str("oracle", name).Str("move", m.String()).Uint64("ours", div[m]).Uint64("theirs", want).Msg("count differs")
			}
		}
		for m, n := range ref {
			mismatches++
			log.Warn().Str("oracle", name).Str("move", m).Uint64("theirs", n).Msg("move missing")
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%w: %d mismatches", errMismatch, mismatches)
	}
	if o.verify {
		log.Info().Int("depth", o.depth).Uint64("nodes", sum).Msg("all reference generators agree")
	}
	return nil
}

// dragontoothDivide computes the same per-move counts with an independent generator.
func dragontoothDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := map[string]uint64{}
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = dragontoothPerft(&b, depth-1)
		undo()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

// gooseDivide asks the GooseEngineMG generator for its per-move counts.
func gooseDivide(fen string, depth int) (map[string]uint64, error) {
	b, err := goose.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("goosemg: %w", err)
	}
	out := map[string]uint64{}
	for m, n := range goose.PerftDivide(b, depth) {
		out[m.String()] = n
	}
	return out, nil
}

package game_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/notnil/chess"

	"chessai/board"
	"chessai/game"
)

func ourMoves(g *game.Game) []string {
	var out []string
	for sq := board.Square(0); sq < 64; sq++ {
		for _, m := range g.LegalMoves(sq) {
			out = append(out, m.String())
		}
	}
	sort.Strings(out)
	return out
}

func theirMoves(cg *chess.Game) (map[string]*chess.Move, []string) {
	byName := map[string]*chess.Move{}
	var names []string
	for _, m := range cg.ValidMoves() {
		byName[m.String()] = m
		names = append(names, m.String())
	}
	sort.Strings(names)
	return byName, names
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Random games are replayed against an independent rules implementation; legal move sets
// and mate/stalemate verdicts must agree at every ply.
func TestRandomGamesAgreeWithIndependentRules(t *testing.T) {
	starts := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	games := 8
	if testing.Short() {
		games = 2
	}
	rng := rand.New(rand.NewSource(42))
	for _, fen := range starts {
		for n := 0; n < games; n++ {
			g := newGame(t, fen)
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatalf("chess.FEN(%q): %v", fen, err)
			}
			cg := chess.NewGame(opt)

			for ply := 0; ply < 150 && !g.Status().Over(); ply++ {
				ours := ourMoves(g)
				byName, theirs := theirMoves(cg)
				if !sameStrings(ours, theirs) {
					t.Fatalf("%s: legal moves differ\nours:   %v\ntheirs: %v", g.FEN(), ours, theirs)
				}
				pick := ours[rng.Intn(len(ours))]
				play(t, g, pick)
				if err := cg.Move(byName[pick]); err != nil {
					t.Fatalf("oracle rejected %s: %v", pick, err)
				}
			}

			switch g.Status().State {
			case game.Checkmate:
				if cg.Position().Status() != chess.Checkmate {
					t.Fatalf("%s: we see checkmate, oracle sees %v", g.FEN(), cg.Position().Status())
				}
			case game.Stalemate:
				if cg.Position().Status() != chess.Stalemate {
					t.Fatalf("%s: we see stalemate, oracle sees %v", g.FEN(), cg.Position().Status())
				}
			}
		}
	}
}

package board_test

import (
	"testing"

	"chessai/board"
)

func TestPerftInitialPosition(t *testing.T) {
	p, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed for initial position: %v", err)
	}
	for depth, want := range []uint64{1, 20, 400, 8902} {
		if got := board.Perft(p, depth); got != want {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
		}
	}
	if p.FEN() != board.FENStartPos {
		t.Fatalf("perft left the position modified: %s", p.FEN())
	}
}

func TestPerftInitialDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 4 perft in short mode")
	}
	p := board.NewPosition()
	if got := board.Perft(p, 4); got != 197281 {
		t.Fatalf("Initial depth4: got %d want %d", got, 197281)
	}
}

func TestPerftKiwipete(t *testing.T) {
	p, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN failed for Kiwipete position: %v", err)
	}
	if got := board.Perft(p, 1); got != 48 {
		for _, m := range p.LegalMoves() {
			t.Logf("  %s mp=%v cap=%v kind=%s", m, m.MovedPiece(), m.CapturedPiece(), m.Kind())
		}
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := board.Perft(p, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
	if got := board.Perft(p, 3); got != 97862 {
		t.Fatalf("Kiwipete depth3: got %d want %d", got, 97862)
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	p, err := board.ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := board.Perft(p, 1); got != 5 {
		t.Fatalf("EP depth1: got %d want %d", got, 5)
	}
	if got := board.Perft(p, 2); got != 19 {
		t.Fatalf("EP depth2: got %d want %d", got, 19)
	}
}

func TestPerftPromotionPosition(t *testing.T) {
	p, err := board.ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := board.Perft(p, 1); got != 11 {
		t.Fatalf("Promotion depth1: got %d want %d", got, 11)
	}
}

// Additional standard perft positions from the Chess Programming Wiki
func TestPerftPosition3(t *testing.T) {
	p := board.MustParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	for depth, want := range map[int]uint64{1: 14, 2: 191, 3: 2812} {
		if got := board.Perft(p, depth); got != want {
			t.Fatalf("Pos3 d%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	p := board.MustParseFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	for depth, want := range map[int]uint64{1: 6, 2: 264, 3: 9467} {
		if got := board.Perft(p, depth); got != want {
			t.Fatalf("Pos4 d%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	p := board.MustParseFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	for depth, want := range map[int]uint64{1: 44, 2: 1486, 3: 62379} {
		if got := board.Perft(p, depth); got != want {
			t.Fatalf("Pos5 d%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := board.NewPosition()
	div := board.PerftDivide(p, 3)
	if len(div) != 20 {
		t.Fatalf("divide root moves: got %d want 20", len(div))
	}
	var total uint64
	for _, n := range div {
		total += n
	}
	if total != 8902 {
		t.Fatalf("divide total: got %d want 8902", total)
	}
}

func BenchmarkPerftInitialDepth3(b *testing.B) {
	p := board.NewPosition()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		board.Perft(p, 3)
	}
}

func BenchmarkPerftKiwipeteDepth2(b *testing.B) {
	p := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		board.Perft(p, 2)
	}
}

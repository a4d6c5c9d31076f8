package board_test

import (
	"sort"
	"testing"

	"chessai/board"
)

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []board.Move, s string) bool {
	for _, m := range moves {
		if m.String() == s {
			return true
		}
	}
	return false
}

func TestIsSquareAttackedRookFileWithBlocker(t *testing.T) {
	p := board.MustParseFEN("4r2k/8/8/8/8/8/8/4K3 w - - 0 1")
	e1 := board.MustSquare("e1")
	if !p.InCheck(board.White) {
		t.Fatalf("expected White in check from rook on file")
	}
	p.SetPiece(board.MustSquare("e3"), board.WhitePawn)
	if p.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
}

func TestIsSquareAttackedBishopDiagonalWithBlocker(t *testing.T) {
	p := board.MustParseFEN("7k/8/8/8/1b6/8/8/4K3 w - - 0 1")
	e1 := board.MustSquare("e1")
	if !p.IsSquareAttacked(e1, board.Black) || !p.InCheck(board.White) {
		t.Fatalf("expected e1 attacked by bishop along diagonal")
	}
	p.SetPiece(board.MustSquare("d2"), board.WhitePawn)
	if p.IsSquareAttacked(e1, board.Black) {
		t.Fatalf("did not expect e1 attacked after diagonal blocker")
	}
}

func TestIsSquareAttackedPawnsKnightsKings(t *testing.T) {
	p := board.MustParseFEN("7k/8/8/3p4/8/5n2/8/K7 w - - 0 1")
	if !p.IsSquareAttacked(board.MustSquare("e4"), board.Black) {
		t.Fatalf("black pawn on d5 should attack e4")
	}
	if p.IsSquareAttacked(board.MustSquare("c6"), board.Black) {
		t.Fatalf("pawns only attack diagonally forward")
	}
	if !p.IsSquareAttacked(board.MustSquare("e1"), board.Black) {
		t.Fatalf("knight on f3 should attack e1")
	}
	if !p.IsSquareAttacked(board.MustSquare("g7"), board.Black) {
		t.Fatalf("king on h8 should attack g7")
	}
	if !p.IsSquareAttacked(board.MustSquare("b2"), board.White) {
		t.Fatalf("king on a1 should attack b2")
	}
	att := p.Attackers(board.MustSquare("e1"), board.Black)
	if att != uint64(1)<<uint(board.MustSquare("f3")) {
		t.Fatalf("attackers of e1: got %x", att)
	}
}

func TestPinnedSliderCannotLeaveLine(t *testing.T) {
	// The e2 rook is pinned by the e8 rook; it may only move along the e-file
	p := board.MustParseFEN("4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	moves := p.LegalMovesFrom(board.MustSquare("e2"))
	if len(moves) != 6 {
		t.Fatalf("pinned rook moves: got %v", moveStrings(moves))
	}
	for _, m := range moves {
		if m.To().File() != 4 {
			t.Fatalf("pinned rook left the file: %s", m)
		}
	}
	if !hasMove(moves, "e2e8") {
		t.Fatalf("pinned rook should be able to capture the pinner")
	}

	// A pinned bishop on the same line has no legal moves at all
	p = board.MustParseFEN("4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if moves := p.LegalMovesFrom(board.MustSquare("e2")); len(moves) != 0 {
		t.Fatalf("pinned bishop should be frozen, got %v", moveStrings(moves))
	}
}

func TestLegalMovesFromEmptyOrOpponentSquare(t *testing.T) {
	p := board.NewPosition()
	if moves := p.LegalMovesFrom(board.MustSquare("e4")); len(moves) != 0 {
		t.Fatalf("empty square produced moves: %v", moveStrings(moves))
	}
	if moves := p.LegalMovesFrom(board.MustSquare("e7")); len(moves) != 0 {
		t.Fatalf("opponent piece produced moves: %v", moveStrings(moves))
	}
	if got := moveStrings(p.LegalMovesFrom(board.MustSquare("g1"))); len(got) != 2 || got[0] != "g1f3" || got[1] != "g1h3" {
		t.Fatalf("knight g1: got %v", got)
	}
}

func TestCastlingEligibility(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"both sides open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", true},
		{"queenside open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", true},
		{"through check", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", "e1g1", false},
		{"into check", "r3k2r/8/8/8/8/8/6r1/R3K2R w KQkq - 0 1", "e1g1", false},
		{"b1 attacked does not matter", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1", "e1c1", true},
		{"path blocked", "r3k2r/8/8/8/8/8/8/R3KN1R w KQkq - 0 1", "e1g1", false},
		{"right lost", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "e1g1", false},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", true},
	}
	for _, tc := range tests {
		p := board.MustParseFEN(tc.fen)
		king := p.KingSquare(p.SideToMove())
		if got := hasMove(p.LegalMovesFrom(king), tc.move); got != tc.want {
			t.Errorf("%s: castle %s allowed=%v want %v", tc.name, tc.move, got, tc.want)
		}
	}

	// In check: no castling either way
	p := board.MustParseFEN("r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
	moves := p.LegalMovesFrom(board.MustSquare("e1"))
	if hasMove(moves, "e1g1") || hasMove(moves, "e1c1") {
		t.Fatalf("castling out of check allowed: %v", moveStrings(moves))
	}
}

func TestCastlingRightsLostAfterKingOrRookMoves(t *testing.T) {
	p := board.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	p.Apply(mustParse(t, "h1h2"))
	p.Apply(mustParse(t, "a8a7"))
	p.Apply(mustParse(t, "h2h1"))
	p.Apply(mustParse(t, "a7a8"))
	// Rook is back on h1 but the right is gone
	if hasMove(p.LegalMovesFrom(board.MustSquare("e1")), "e1g1") {
		t.Fatalf("kingside castling allowed after the rook moved")
	}
	if !hasMove(p.LegalMovesFrom(board.MustSquare("e1")), "e1c1") {
		t.Fatalf("queenside castling should still be allowed")
	}
	p.Apply(mustParse(t, "e1d1"))
	p.Apply(mustParse(t, "e8e7"))
	p.Apply(mustParse(t, "d1e1"))
	if got := p.CastlingRights(); got != board.CastlingNone {
		t.Fatalf("rights after both kings moved: got %d", got)
	}
}

func TestCastlingRightLostWhenRookCaptured(t *testing.T) {
	p := board.MustParseFEN("r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1")
	p.Apply(mustParse(t, "g2h1"))
	if p.CastlingRights()&board.CastlingWhiteK != 0 {
		t.Fatalf("white kingside right should be lost when the h1 rook is captured")
	}
}

func TestEnPassantOnlyImmediately(t *testing.T) {
	p := board.MustParseFEN("4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	p.Apply(mustParse(t, "d7d5"))
	if !hasMove(p.LegalMovesFrom(board.MustSquare("e5")), "e5d6") {
		t.Fatalf("en passant should be available right after the double push")
	}
	p.Apply(mustParse(t, "e1e2"))
	p.Apply(mustParse(t, "e8e7"))
	if hasMove(p.LegalMovesFrom(board.MustSquare("e5")), "e5d6") {
		t.Fatalf("en passant must expire after one ply")
	}
}

func TestEnPassantExposingKingIsIllegal(t *testing.T) {
	// Capturing en passant would remove both pawns from the fifth rank and expose the king
	p := board.MustParseFEN("8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	if hasMove(p.LegalMovesFrom(board.MustSquare("e5")), "e5d6") {
		t.Fatalf("en passant exposing the king must be illegal")
	}
}

func TestPromotionGeneratesFourPieces(t *testing.T) {
	p := board.MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	got := moveStrings(p.LegalMovesFrom(board.MustSquare("a7")))
	want := []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r", "a7b8b", "a7b8n", "a7b8q", "a7b8r"}
	if len(got) != len(want) {
		t.Fatalf("promotions: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("promotions: got %v want %v", got, want)
		}
	}
	for _, m := range p.LegalMovesFrom(board.MustSquare("a7")) {
		if m.Kind() != board.KindPromotion {
			t.Fatalf("%s kind: got %s", m, m.Kind())
		}
	}
}

func TestHasLegalMovesMatchesLegalMoves(t *testing.T) {
	for _, fen := range []string{
		board.FENStartPos,
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",                            // stalemate
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", // fool's mate
	} {
		p := board.MustParseFEN(fen)
		if got, want := p.HasLegalMoves(), len(p.LegalMoves()) > 0; got != want {
			t.Fatalf("%s: HasLegalMoves=%v, len(LegalMoves)>0=%v", fen, got, want)
		}
	}
}

func BenchmarkLegalMovesKiwipete(b *testing.B) {
	p := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	buf := make([]board.Move, 0, 256)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = p.LegalMovesInto(buf[:0])
	}
}

package board

import (
	"fmt"
	"strings"
)

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags
const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
	// (Promotion is indicated by a non-zero promotion piece)
)

// NoMove is the zero value; it never encodes a real move because from == to.
const NoMove Move = 0

// MoveKind classifies a move for collaborators (sound, animation, notation).
type MoveKind uint8

const (
	KindNormal MoveKind = iota
	KindCapture
	KindEnPassant
	KindCastleKingside
	KindCastleQueenside
	KindPromotion
)

func (k MoveKind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindEnPassant:
		return "en-passant"
	case KindCastleKingside:
		return "castle-kingside"
	case KindCastleQueenside:
		return "castle-queenside"
	case KindPromotion:
		return "promotion"
	default:
		return "normal"
	}
}

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured (or NoPiece if none).
// For en passant this is the pawn removed from behind the target square.
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// Kind reports the special-move classification. A capturing promotion is a promotion.
func (m Move) Kind() MoveKind {
	switch {
	case m.PromotionPiece() != NoPiece:
		return KindPromotion
	case m.Flags() == FlagCastle:
		if m.To().File() == 6 {
			return KindCastleKingside
		}
		return KindCastleQueenside
	case m.Flags() == FlagEnPassant:
		return KindEnPassant
	case m.CapturedPiece() != NoPiece:
		return KindCapture
	}
	return KindNormal
}

// Matches reports whether two moves agree on from, to and promotion type. Moves built
// by ParseMove carry no piece information and are resolved against generated moves this way.
func (m Move) Matches(o Move) bool {
	return m.From() == o.From() && m.To() == o.To() && m.PromotionPieceType() == o.PromotionPieceType()
}

// String produces a coordinate representation of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	str := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		str += strings.ToLower(string(charFromPiece(promo)))
	}
	return str
}

// ParseMove decodes coordinate notation ("e2e4", "e7e8q") into a bare move holding only
// from, to and promotion type. Use (*Position).ResolveMove to get the fully-populated
// move for a given position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	promo := NoPiece
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'Q':
			promo = WhiteQueen
		case 'r', 'R':
			promo = WhiteRook
		case 'b', 'B':
			promo = WhiteBishop
		case 'n', 'N':
			promo = WhiteKnight
		default:
			return NoMove, fmt.Errorf("%w: bad promotion piece in %q", ErrBadMove, s)
		}
	}
	return NewMove(from, to, NoPiece, NoPiece, promo, FlagNone), nil
}

// ResolveMove parses a coordinate move and returns the matching legal move.
func (p *Position) ResolveMove(s string) (Move, error) {
	bare, err := ParseMove(s)
	if err != nil {
		return NoMove, err
	}
	for _, m := range p.LegalMovesFrom(bare.From()) {
		if m.Matches(bare) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s is not legal here", ErrBadMove, s)
}

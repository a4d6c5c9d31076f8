package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return '?'
	}
}

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadFEN}, args...)...)
}

// ParseFEN parses a FEN string and returns the position it describes. The clocks are
// optional and default to 0 and 1. A position without exactly one king per side is
// rejected with an error wrapping ErrInvariant.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenError("not enough fields in %q", fen)
	}

	p := &Position{enPassantSquare: NoSquare, fullmoveNumber: 1}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("too many squares in rank %d", rank+1)
			}
			p.addPiece(NewSquare(rank, file), piece)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castlingRights |= CastlingWhiteK
			case 'Q':
				p.castlingRights |= CastlingWhiteQ
			case 'k':
				p.castlingRights |= CastlingBlackK
			case 'q':
				p.castlingRights |= CastlingBlackQ
			default:
				return nil, fenError("invalid castling rights character %q", ch)
			}
		}
	}
	// A right whose king or rook is not on its home square can never be used
	for _, side := range castleSpecs {
		for _, cs := range side {
			king := p.pieces[int(cs.kingFrom)]
			rook := p.pieces[int(cs.rookFrom)]
			if king.Type() != PieceTypeKing || rook.Type() != PieceTypeRook || king.Color() != rook.Color() {
				p.castlingRights &^= cs.right
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("invalid en passant square %q", fields[3])
		}
		// The target lies behind an enemy pawn that has just advanced two squares
		wantRank, pawnSq, enemyPawn := 5, ep-8, BlackPawn
		if p.sideToMove == Black {
			wantRank, pawnSq, enemyPawn = 2, ep+8, WhitePawn
		}
		if ep.Rank() != wantRank {
			return nil, fenError("en passant square %s not on rank %d for %s to move", ep, wantRank+1, p.sideToMove)
		}
		if p.pieces[int(ep)] != NoPiece || p.pieces[int(pawnSq)] != enemyPawn {
			return nil, fenError("en passant square %s without a pawn that just advanced past it", ep)
		}
		p.enPassantSquare = ep
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, fenError("halfmove clock %q is not a number", fields[4])
		}
		p.halfmoveClock = halfmove
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, fenError("fullmove number %q is not a positive number", fields[5])
		}
		p.fullmoveNumber = fullmove
	}

	p.zobristKey = p.ComputeZobrist()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustParseFEN is ParseFEN for literals in tests and tools. It panics on error.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN produces the FEN string representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			pc := p.pieces[rank*8+file]
			if pc == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(charFromPiece(pc))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if p.castlingRights == CastlingNone {
		sb.WriteByte('-')
	} else {
		for _, r := range []struct {
			right CastlingRights
			ch    byte
		}{{CastlingWhiteK, 'K'}, {CastlingWhiteQ, 'Q'}, {CastlingBlackK, 'k'}, {CastlingBlackQ, 'q'}} {
			if p.castlingRights&r.right != 0 {
				sb.WriteByte(r.ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteByte(' ')

	// 5-6. Clocks
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

package board

import "errors"

var (
	// ErrInvariant marks a corrupted position: a missing or extra king, an
	// out-of-range square or bookkeeping that no longer matches the board.
	ErrInvariant = errors.New("position invariant violated")
	ErrBadFEN    = errors.New("invalid FEN")
	ErrBadMove   = errors.New("invalid move string")
)

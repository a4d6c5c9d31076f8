package engine

import (
	"math/bits"

	"chessai/board"
)

// Bound types stored with a score. AlphaFlag marks an upper bound (the node failed
// low), BetaFlag a lower bound (it failed high). Zero marks an empty slot.
const (
	AlphaFlag = iota + 1
	BetaFlag
	ExactFlag
)

type TTEntry struct {
	Hash  uint64
	Move  board.Move
	Score int32
	Depth int8
	Flag  int8
}

// TransTable is a fixed-capacity, direct-mapped cache keyed by Zobrist hash. A store
// always replaces whatever occupied the slot.
type TransTable struct {
	entries []TTEntry
	mask    uint64
}

// newTransTable allocates the largest power of two not above size.
func newTransTable(size int) *TransTable {
	if size < 1 {
		size = 1
	}
	n := uint64(1) << (bits.Len64(uint64(size)) - 1)
	return &TransTable{entries: make([]TTEntry, n), mask: n - 1}
}

// Len returns the table capacity in entries.
func (tt *TransTable) Len() int { return len(tt.entries) }

func (tt *TransTable) clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TransTable) getEntry(hash uint64) (entry *TTEntry, found bool) {
	e := &tt.entries[hash&tt.mask]
	if e.Flag == 0 || e.Hash != hash {
		return nil, false
	}
	return e, true
}

/*
Always replace: deeper entries are not protected. With the table cleared at the start
of every root search this never mixes bounds from searches with different windows.
*/
func (tt *TransTable) storeEntry(hash uint64, depth int, move board.Move, score int, flag int8) {
	e := &tt.entries[hash&tt.mask]
	e.Hash = hash
	e.Depth = int8(depth)
	e.Move = move
	e.Score = int32(score)
	e.Flag = flag
}

// useEntry applies a stored result to the window. It returns usable=true with a score
// when the node can return at once; otherwise alpha and beta come back tightened.
func useEntry(e *TTEntry, depth int, alpha, beta int) (usable bool, score int, newAlpha int, newBeta int) {
	if e == nil || int(e.Depth) < depth {
		return false, 0, alpha, beta
	}
	stored := int(e.Score)
	switch e.Flag {
	case ExactFlag:
		return true, stored, alpha, beta
	case BetaFlag:
		alpha = Max(alpha, stored)
	case AlphaFlag:
		beta = Min(beta, stored)
	}
	if alpha >= beta {
		return true, stored, alpha, beta
	}
	return false, 0, alpha, beta
}

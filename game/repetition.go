package game

// repetitionTable counts how often each position key occurred in the game so far.
type repetitionTable map[uint64]int

func (r repetitionTable) push(key uint64) { r[key]++ }

func (r repetitionTable) pop(key uint64) {
	if r[key] <= 1 {
		delete(r, key)
		return
	}
	r[key]--
}

func (r repetitionTable) count(key uint64) int { return r[key] }

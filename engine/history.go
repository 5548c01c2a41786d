package engine

// HistoryTableT tracks how many times each Zobrist hash has appeared in the
// game so far, for repetition detection.
type HistoryTableT map[uint64]int

// Add registers an occurrence of the hash and returns the new count.
func (h HistoryTableT) Add(hash uint64) int {
	count := h[hash] + 1
	h[hash] = count
	return count
}

// Remove deregisters an occurrence of the hash and returns the new count.
func (h HistoryTableT) Remove(hash uint64) int {
	count := h[hash] - 1
	if count <= 0 {
		delete(h, hash)
		return 0
	}
	h[hash] = count
	return count
}

// Count returns how many times the hash has occurred.
func (h HistoryTableT) Count(hash uint64) int {
	return h[hash]
}

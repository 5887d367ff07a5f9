// Package align distributes a word's mora sequence across its kanji so that
// every position carries a dictionary reading, searching candidate partitions
// in canonical order with early exit.
package align

// PartitionIter lazily enumerates the order-preserving ways to cut a mora
// sequence into exactly groups contiguous, non-empty groups. Cut positions
// advance leftmost-first, so the partition with the shortest leading groups
// comes out first.
type PartitionIter struct {
	items  []string
	groups int
	cuts   []int
	done   bool
}

// NewPartitionIter prepares iteration over splits of items into groups parts.
// An impossible split (groups < 1 or groups > len(items)) yields nothing.
func NewPartitionIter(items []string, groups int) *PartitionIter {
	it := &PartitionIter{items: items, groups: groups}
	if groups < 1 || groups > len(items) {
		it.done = true
		return it
	}
	it.cuts = make([]int, groups-1)
	for i := range it.cuts {
		it.cuts[i] = i + 1
	}
	return it
}

// Next returns the next partition, or nil when exhausted. The returned groups
// alias the underlying items slice and must not be mutated.
func (it *PartitionIter) Next() [][]string {
	if it.done {
		return nil
	}
	out := make([][]string, 0, it.groups)
	prev := 0
	for _, cut := range it.cuts {
		out = append(out, it.items[prev:cut])
		prev = cut
	}
	out = append(out, it.items[prev:])

	it.advance()
	return out
}

// advance steps the cut positions like an odometer over strictly increasing
// combinations of 1..len(items)-1.
func (it *PartitionIter) advance() {
	n := len(it.items)
	k := len(it.cuts)
	if k == 0 {
		it.done = true
		return
	}
	i := k - 1
	for i >= 0 && it.cuts[i] == n-(k-i) {
		i--
	}
	if i < 0 {
		it.done = true
		return
	}
	it.cuts[i]++
	for j := i + 1; j < k; j++ {
		it.cuts[j] = it.cuts[j-1] + 1
	}
}

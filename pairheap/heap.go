// Package pairheap implements the indexed max-priority queue of
// spec.md §4.2: a dense array of {pair, frequency} entries in max-heap
// order, paired with a hash index from pair to array position so an
// existing entry's frequency can be adjusted in place rather than
// re-inserted and lazily filtered on pop.
//
// The heap shape — buildHeap/heapify/sift-up over a flat slice — is
// grounded on github.com/lars-t-hansen/util/heaps, generalized here with
// the index map an indexed heap needs that a plain priority queue does
// not.
package pairheap

import (
	"fmt"

	"github.com/djeday123/bpecore/core"
)

type entry struct {
	pair core.Pair
	freq uint64
}

// Heap is an indexed max-priority queue keyed by core.Pair and valued by
// a frequency count.
type Heap struct {
	xs  []entry
	idx map[core.Pair]int
}

// New returns an empty Heap.
func New() *Heap {
	return &Heap{idx: make(map[core.Pair]int)}
}

// Size returns the number of entries, tombstones included.
func (h *Heap) Size() int { return len(h.xs) }

// IsEmpty reports whether the heap holds no entries at all (not even
// tombstones).
func (h *Heap) IsEmpty() bool { return len(h.xs) == 0 }

// Get returns the current frequency for pair, or ok=false if absent.
func (h *Heap) Get(pair core.Pair) (uint64, bool) {
	i, ok := h.idx[pair]
	if !ok {
		return 0, false
	}
	return h.xs[i].freq, true
}

// Insert adds pair with the given frequency. pair must be absent;
// otherwise Insert returns core.ErrAlreadyPresent wrapped.
func (h *Heap) Insert(pair core.Pair, freq uint64) error {
	if _, ok := h.idx[pair]; ok {
		return fmt.Errorf("pairheap: insert %v: %w", pair, core.ErrAlreadyPresent)
	}
	h.xs = append(h.xs, entry{pair: pair, freq: freq})
	i := len(h.xs) - 1
	h.idx[pair] = i
	h.siftUp(i)
	return nil
}

// Update overwrites the frequency of an existing pair and restores the
// heap property. pair must be present — this is a precondition violation
// (a programming bug), not a runtime error, and panics if violated, the
// same treatment spec.md §7 gives to cursor preconditions. A new
// frequency of 0 leaves the entry in the heap as a tombstone rather than
// removing it (spec.md §4.2).
func (h *Heap) Update(pair core.Pair, newFreq uint64) {
	i, ok := h.idx[pair]
	if !ok {
		panic(fmt.Sprintf("pairheap: Update called for absent pair %v", pair))
	}
	old := h.xs[i].freq
	h.xs[i].freq = newFreq
	switch {
	case newFreq > old:
		h.siftUp(i)
	case newFreq < old:
		h.siftDown(i)
	}
}

// Increment raises pair's frequency by one, inserting it with frequency
// 1 if absent — spec.md §4.3.1: "Increment on a present pair updates and
// sifts up; on an absent pair it inserts with frequency 1."
func (h *Heap) Increment(pair core.Pair) {
	if i, ok := h.idx[pair]; ok {
		h.xs[i].freq++
		h.siftUp(i)
		return
	}
	_ = h.Insert(pair, 1) // cannot fail: idx lookup above proved pair absent
}

// Decrement lowers pair's frequency by one, floored at zero, and is a
// no-op if pair is absent — spec.md §4.3.1: "'Decrement' with delta -1 on
// a present pair updates its frequency to max(0, f-1) ... Decrement on an
// absent pair is a no-op."
func (h *Heap) Decrement(pair core.Pair) {
	i, ok := h.idx[pair]
	if !ok {
		return
	}
	if h.xs[i].freq == 0 {
		return
	}
	h.xs[i].freq--
	h.siftDown(i)
}

// PopMax removes and returns the maximum entry. Fails core.ErrEmpty on
// an empty heap.
func (h *Heap) PopMax() (core.Pair, uint64, error) {
	if len(h.xs) == 0 {
		return core.Pair{}, 0, fmt.Errorf("pairheap: pop_max: %w", core.ErrEmpty)
	}
	top := h.xs[0]
	delete(h.idx, top.pair)

	last := len(h.xs) - 1
	if last == 0 {
		h.xs = h.xs[:0]
		return top.pair, top.freq, nil
	}
	h.xs[0] = h.xs[last]
	h.xs = h.xs[:last]
	h.idx[h.xs[0].pair] = 0
	h.siftDown(0)
	return top.pair, top.freq, nil
}

// hasHeapProperty reports whether every node's frequency is >= its
// children's, used by tests to check the invariant spec.md §8 names.
func (h *Heap) hasHeapProperty() bool {
	for i := range h.xs {
		if l := left(i); l < len(h.xs) && h.greater(l, i) {
			return false
		}
		if r := right(i); r < len(h.xs) && h.greater(r, i) {
			return false
		}
	}
	return true
}

// indexConsistent reports whether every mapped index really does point
// back to the pair it was indexed under.
func (h *Heap) indexConsistent() bool {
	for p, i := range h.idx {
		if i < 0 || i >= len(h.xs) || h.xs[i].pair != p {
			return false
		}
	}
	return true
}

func (h *Heap) greater(i, j int) bool {
	a, b := h.xs[i], h.xs[j]
	if a.freq != b.freq {
		return a.freq > b.freq
	}
	if a.pair.First != b.pair.First {
		return a.pair.First > b.pair.First
	}
	return a.pair.Second > b.pair.Second
}

func (h *Heap) swap(i, j int) {
	h.xs[i], h.xs[j] = h.xs[j], h.xs[i]
	h.idx[h.xs[i].pair] = i
	h.idx[h.xs[j].pair] = j
}

// siftUp moves the entry at i toward the root while it is greater than
// its parent, and returns its final resting index.
func (h *Heap) siftUp(i int) int {
	for i > 0 {
		p := parent(i)
		if !h.greater(i, p) {
			break
		}
		h.swap(i, p)
		i = p
	}
	return i
}

// siftDown moves the entry at i toward the leaves while a child is
// greater, and returns its final resting index.
func (h *Heap) siftDown(i int) int {
	n := len(h.xs)
	for {
		largest := i
		if l := left(i); l < n && h.greater(l, largest) {
			largest = l
		}
		if r := right(i); r < n && h.greater(r, largest) {
			largest = r
		}
		if largest == i {
			break
		}
		h.swap(i, largest)
		i = largest
	}
	return i
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

// Package skipseq implements the bit-packed skipping sequence described in
// spec.md §4.1: a fixed-size slot array that supports logical deletion in
// O(1) amortized time by encoding a forward jump distance in the high bits
// of each slot, instead of shifting the remaining elements down.
package skipseq

import (
	"fmt"

	"github.com/djeday123/bpecore/core"
)

// Seq is a bit-packed sequence of token ids with in-place logical delete
// and forward iteration. The storage length is fixed at construction;
// only the live count decreases (spec.md §3, SkipSeq invariants).
type Seq struct {
	storage []uint32
	width   core.Width
	live    int
}

// New allocates a Seq from a read-only view of initial token ids. Every
// value must fit in width.ValueBits(); a value that does not returns
// core.ErrValueTooWide wrapped with the offending index. An allocation
// the Go runtime cannot satisfy surfaces as core.ErrOutOfMemory rather
// than crashing the process (spec.md §4.1: "Fails with OutOfMemory if
// allocation fails") — make panics rather than returning an error on
// exhaustion, so that panic is recovered here at the one allocation site
// construction needs.
func New(values []core.TokenId, width core.Width) (seq *Seq, err error) {
	defer func() {
		if r := recover(); r != nil {
			seq, err = nil, fmt.Errorf("skipseq: new: %w", core.ErrOutOfMemory)
		}
	}()

	storage := make([]uint32, len(values))
	for i, v := range values {
		if !width.Fits(v) {
			return nil, fmt.Errorf("skipseq: value %d at index %d: %w", v, i, core.ErrValueTooWide)
		}
		storage[i] = width.Pack(v, 0)
	}
	return &Seq{storage: storage, width: width, live: len(values)}, nil
}

// Len returns the fixed storage length (live + dead slots).
func (s *Seq) Len() int { return len(s.storage) }

// LiveCount returns the number of slots whose skip field is zero.
func (s *Seq) LiveCount() int { return s.live }

// Width returns the (W, k) layout this sequence was constructed with.
func (s *Seq) Width() core.Width { return s.width }

// DeadRatio reports the fraction of slots that are currently dead, used
// by callers deciding whether a Compact would be worthwhile.
func (s *Seq) DeadRatio() float64 {
	if len(s.storage) == 0 {
		return 0
	}
	dead := len(s.storage) - s.live
	return float64(dead) / float64(len(s.storage))
}

// Compact rebuilds the slot array to contain only live slots, all with a
// zero skip field. It changes no observable result of walking the
// sequence — only how many dead slots a cursor has to step over to do
// so — and is never called automatically by this package; callers on
// very long corpora may invoke it between merge steps once DeadRatio
// grows large enough that individual skip chains are costing real time.
// This mirrors the periodic compaction thedeemon's full-rescan baseline
// performs on its flat slice once dead entries pass a fixed threshold,
// adapted here to the skip-field representation instead of a hole value.
func (s *Seq) Compact() {
	if s.live == len(s.storage) {
		return
	}
	out := make([]uint32, s.live)
	j := 0
	for _, slot := range s.storage {
		if s.width.IsLive(slot) {
			out[j] = s.width.Pack(s.width.Value(slot), 0)
			j++
		}
	}
	s.storage = out
}

// scanLive returns the index of the first live slot at or after from,
// compounding skip distances on the fly, or (-1, false) if none remains.
// This is the "advance algorithm" of spec.md §4.1.
func (s *Seq) scanLive(from int) (int, bool) {
	j := from
	n := len(s.storage)
	for j < n {
		sk := s.width.Skip(s.storage[j])
		if sk == 0 {
			return j, true
		}
		if sk < 1 {
			sk = 1
		}
		j += int(sk)
	}
	return -1, false
}

// NewCursor returns a forward cursor in the initial state (before the
// first Advance).
func (s *Seq) NewCursor() *Cursor {
	return &Cursor{seq: s, pos: -1}
}

// LiveValues walks the sequence with a fresh cursor and returns every
// live value in order. It is a convenience for tests and for the
// tokenizer layer's "final SkipSeq contents" output (spec.md §6).
func (s *Seq) LiveValues() []core.TokenId {
	out := make([]core.TokenId, 0, s.live)
	c := s.NewCursor()
	for {
		v, ok := c.Advance()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

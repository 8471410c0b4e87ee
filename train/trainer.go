// Package train orchestrates the BPE merge loop of spec.md §4.3: seed the
// PairHeap with one linear pass over the SkipSeq, then repeatedly pop the
// most frequent pair, walk the sequence merging every occurrence, and
// apply the four local frequency deltas around each merge site instead of
// rescanning.
package train

import (
	"fmt"

	"github.com/djeday123/bpecore/core"
	"github.com/djeday123/bpecore/pairheap"
	"github.com/djeday123/bpecore/skipseq"
)

// Config is the subset of pkg/config.Config the core trainer needs,
// already resolved into a core.Width.
type Config struct {
	Width           core.Width
	FirstEmitID     core.TokenId
	TargetVocabSize int
}

// Trainer holds exclusive mutable access to one SkipSeq and one PairHeap
// for the duration of a training session (spec.md §5): the next token id
// to emit, the target vocabulary size, and the two owned data
// structures. Nothing outside Trainer ever holds a cursor or reference
// into either.
type Trainer struct {
	seq         *skipseq.Seq
	heap        *pairheap.Heap
	nextID      core.TokenId
	target      int
	mergesSoFar int
}

// Stats summarizes a completed (or early-terminated) training run.
type Stats struct {
	MergesEmitted   int
	FinalVocabSize  int
	FinalLiveCount  int
	StoppedOnTarget bool
	StoppedOnHeap   bool
	StoppedOnLive   bool
}

// New builds a Trainer over a fresh SkipSeq copied from initial and seeds
// the PairHeap with one linear pass (spec.md §4.3 "Seed").
func New(initial []core.TokenId, cfg Config) (*Trainer, error) {
	seq, err := skipseq.New(initial, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	t := &Trainer{
		seq:    seq,
		heap:   pairheap.New(),
		nextID: cfg.FirstEmitID,
		target: cfg.TargetVocabSize,
	}
	for pair, freq := range t.seedCounts() {
		// Insert cannot fail here: seedCounts never emits the same pair twice.
		_ = t.heap.Insert(pair, freq)
	}
	return t, nil
}

// Seq exposes the underlying SkipSeq for callers that want the final
// encoded corpus (spec.md §6) once training is done.
func (t *Trainer) Seq() *skipseq.Seq { return t.seq }

// Close releases the Trainer's resources. Both seq and heap are plain
// Go slices under the hood, so there is nothing to release here; Close
// is a no-op kept for symmetry with the teacher's explicit backend
// Storage lifecycle, where a real handle does need an explicit release.
func (t *Trainer) Close() error { return nil }

// seedCounts performs the one linear pass spec.md §4.3 describes: the
// left member of every counted pair is the previous value advance
// returned, the right member is peek, and the scan terminates at the
// first "end" from either.
func (t *Trainer) seedCounts() map[core.Pair]uint64 {
	counts := make(map[core.Pair]uint64)
	c := t.seq.NewCursor()
	prev, ok := c.Advance()
	if !ok {
		return counts
	}
	for {
		next, ok := c.Peek()
		if !ok {
			break
		}
		counts[core.Pair{First: prev, Second: next}]++
		prev, ok = c.Advance()
		if !ok {
			break
		}
	}
	return counts
}

// Train runs the main loop to completion, reporting every merge to sink
// in emission order, and returns summary statistics. spec.md §4.3
// "Termination": the loop exits when next_id reaches the target, the
// heap has no positive-frequency pair left, or the live count drops
// below two.
func (t *Trainer) Train(sink MergeSink) Stats {
	for int(t.nextID) < t.target {
		if t.seq.LiveCount() < 2 {
			return t.stats(false, false, true)
		}
		pair, freq, err := t.heap.PopMax()
		if err != nil {
			return t.stats(false, true, false)
		}
		if freq == 0 {
			return t.stats(false, false, false)
		}
		t.applyMerge(pair)
		if sink != nil {
			sink.Report(pair, t.nextID)
		}
		t.mergesSoFar++
		t.nextID++
	}
	return t.stats(true, false, false)
}

func (t *Trainer) stats(onTarget, onHeap, onLive bool) Stats {
	return Stats{
		MergesEmitted:   t.mergesSoFar,
		FinalVocabSize:  int(t.nextID),
		FinalLiveCount:  t.seq.LiveCount(),
		StoppedOnTarget: onTarget,
		StoppedOnHeap:   onHeap,
		StoppedOnLive:   onLive,
	}
}

// applyMerge walks the sequence with a fresh cursor, merging every
// occurrence of pair into t.nextID and applying the four local frequency
// deltas of spec.md §4.3.1 at each site. A target pair whose occurrences
// have all vanished (consumed by an earlier overlapping merge earlier in
// this same pass) is rewritten zero times; this Trainer still advances
// nextID for that step (spec.md §9's open question — documented choice:
// always consume a token id once a pair is popped, rather than
// re-checking and continuing to the next heap entry).
func (t *Trainer) applyMerge(pair core.Pair) {
	c := t.seq.NewCursor()
	prev := core.NoToken

	for {
		current, ok := c.Advance()
		if !ok {
			break
		}
		next, ok := c.Peek()
		if !ok {
			break
		}
		if current == pair.First && next == pair.Second {
			left := prev
			rightRight, hasRightRight := c.Peek2()

			c.ReplaceAndSkipNext(t.nextID)

			if left != core.NoToken {
				t.heap.Decrement(core.Pair{First: left, Second: pair.First})
				t.heap.Increment(core.Pair{First: left, Second: t.nextID})
			}
			if hasRightRight {
				t.heap.Decrement(core.Pair{First: pair.Second, Second: rightRight})
				t.heap.Increment(core.Pair{First: t.nextID, Second: rightRight})
			}

			prev = t.nextID
		} else {
			prev = current
		}
	}
}

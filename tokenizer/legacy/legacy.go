// Package legacy implements BPE training by full rescan: after every
// merge it recounts every adjacent pair in the whole sequence from
// scratch, rather than maintaining incremental frequency deltas. It
// exists purely as a correctness oracle for train.Trainer (spec.md §8
// Property 4: "incremental deltas match full rescan") and is never used
// on a real training run — O(merges × len(sequence)) is fine for the
// small inputs the property test throws at it, nothing else.
package legacy

import "github.com/djeday123/bpecore/core"

// TrainBPE runs the full-rescan algorithm over ids, emitting token ids
// starting at firstEmitID, until targetVocabSize is reached or fewer than
// two tokens remain; a pair occurring only once is still merged. Its pair
// selection rule — highest frequency,
// ties broken by larger First then larger Second — mirrors pairheap's
// Heap.greater so this oracle and train.Trainer make the same choice
// whenever more than one pair is tied for most frequent.
func TrainBPE(ids []core.TokenId, firstEmitID core.TokenId, targetVocabSize int) ([]core.Pair, []core.TokenId) {
	seq := append([]core.TokenId(nil), ids...)
	var merges []core.Pair

	nextID := firstEmitID
	for int(nextID) < targetVocabSize {
		counts := countPairs(seq)
		if len(counts) == 0 {
			break
		}

		best, bestFreq := pickBest(counts)
		if bestFreq == 0 {
			break
		}

		seq = replaceAll(seq, best, nextID)
		merges = append(merges, best)
		nextID++

		if len(seq) < 2 {
			break
		}
	}
	return merges, seq
}

func countPairs(seq []core.TokenId) map[core.Pair]uint64 {
	counts := make(map[core.Pair]uint64)
	for i := 0; i+1 < len(seq); i++ {
		counts[core.Pair{First: seq[i], Second: seq[i+1]}]++
	}
	return counts
}

func pickBest(counts map[core.Pair]uint64) (core.Pair, uint64) {
	var best core.Pair
	var bestFreq uint64
	first := true
	for p, f := range counts {
		switch {
		case first:
			best, bestFreq, first = p, f, false
		case f > bestFreq:
			best, bestFreq = p, f
		case f == bestFreq && greater(p, best):
			best = p
		}
	}
	return best, bestFreq
}

func greater(p, q core.Pair) bool {
	if p.First != q.First {
		return p.First > q.First
	}
	return p.Second > q.Second
}

func replaceAll(seq []core.TokenId, pair core.Pair, newID core.TokenId) []core.TokenId {
	out := make([]core.TokenId, 0, len(seq))
	i := 0
	for i < len(seq) {
		if i+1 < len(seq) && seq[i] == pair.First && seq[i+1] == pair.Second {
			out = append(out, newID)
			i += 2
		} else {
			out = append(out, seq[i])
			i++
		}
	}
	return out
}

package train

import (
	"testing"

	"github.com/djeday123/bpecore/core"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	pairs []core.Pair
	ids   []core.TokenId
}

func (r *recordingSink) Report(pair core.Pair, id core.TokenId) {
	r.pairs = append(r.pairs, pair)
	r.ids = append(r.ids, id)
}

func ids(vs ...int) []core.TokenId {
	out := make([]core.TokenId, len(vs))
	for i, v := range vs {
		out[i] = core.TokenId(v)
	}
	return out
}

// Scenario 3 (spec.md §8): BPE end-to-end, small.
func TestEndToEndSmall(t *testing.T) {
	cfg := Config{
		Width:           core.DefaultWidth(),
		FirstEmitID:     256,
		TargetVocabSize: 258,
	}
	tr, err := New(ids(97, 98, 99, 98, 99, 100, 101), cfg)
	require.NoError(t, err)

	sink := &recordingSink{}
	stats := tr.Train(sink)

	require.Equal(t, []core.Pair{
		{First: 98, Second: 99},
		{First: 256, Second: 256},
	}, sink.pairs)
	require.Equal(t, ids(256, 257), sink.ids)

	require.Equal(t, ids(97, 257, 100, 101), tr.Seq().LiveValues())
	require.Equal(t, 2, stats.MergesEmitted)
	require.True(t, stats.StoppedOnTarget)
	require.Equal(t, 258, stats.FinalVocabSize)
}

func TestStopsWhenLiveCountBelowTwo(t *testing.T) {
	cfg := Config{
		Width:           core.DefaultWidth(),
		FirstEmitID:     256,
		TargetVocabSize: 1000,
	}
	tr, err := New(ids(1, 1), cfg)
	require.NoError(t, err)

	sink := &recordingSink{}
	stats := tr.Train(sink)

	require.Equal(t, 1, stats.MergesEmitted)
	require.Equal(t, 1, stats.FinalLiveCount)
	require.False(t, stats.StoppedOnTarget)
}

func TestAllUniqueInputStopsBeforeTarget(t *testing.T) {
	// Every adjacent pair is distinct and occurs once: after each is
	// merged away the heap still holds the newly formed neighbor pairs
	// at frequency 1, so this keeps merging until only one token
	// remains and the live-count guard fires — the heap itself never
	// goes empty before that point, and the target is never reached.
	cfg := Config{
		Width:           core.DefaultWidth(),
		FirstEmitID:     256,
		TargetVocabSize: 100000,
	}
	tr, err := New(ids(1, 2, 3, 4, 5, 6, 7, 8), cfg)
	require.NoError(t, err)

	stats := tr.Train(nil)
	require.LessOrEqual(t, tr.Seq().LiveCount(), 8)
	require.False(t, stats.StoppedOnTarget)
}

func TestSeedCountsMatchManualScan(t *testing.T) {
	cfg := Config{Width: core.DefaultWidth(), FirstEmitID: 256, TargetVocabSize: 256}
	tr, err := New(ids(1, 2, 1, 2, 3), cfg)
	require.NoError(t, err)

	counts := tr.seedCounts()
	require.Equal(t, uint64(2), counts[core.Pair{First: 1, Second: 2}])
	require.Equal(t, uint64(1), counts[core.Pair{First: 2, Second: 1}])
	require.Equal(t, uint64(1), counts[core.Pair{First: 2, Second: 3}])
}

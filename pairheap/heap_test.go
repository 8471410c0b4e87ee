package pairheap

import (
	"math/rand"
	"testing"

	"github.com/djeday123/bpecore/core"
	"github.com/stretchr/testify/require"
)

// Scenario 6 (spec.md §8): PairHeap update semantics.
func TestUpdateSemantics(t *testing.T) {
	h := New()
	a := core.Pair{First: 1, Second: 1}
	b := core.Pair{First: 2, Second: 2}
	c := core.Pair{First: 3, Second: 3}

	require.NoError(t, h.Insert(a, 5))
	require.NoError(t, h.Insert(b, 3))
	require.NoError(t, h.Insert(c, 7))

	p, f, err := h.PopMax()
	require.NoError(t, err)
	require.Equal(t, c, p)
	require.Equal(t, uint64(7), f)

	h.Update(b, 9)

	p, f, err = h.PopMax()
	require.NoError(t, err)
	require.Equal(t, b, p)
	require.Equal(t, uint64(9), f)

	p, f, err = h.PopMax()
	require.NoError(t, err)
	require.Equal(t, a, p)
	require.Equal(t, uint64(5), f)

	_, _, err = h.PopMax()
	require.ErrorIs(t, err, core.ErrEmpty)
}

func TestInsertThenPopRoundTrip(t *testing.T) {
	h := New()
	p := core.Pair{First: 7, Second: 9}
	require.NoError(t, h.Insert(p, 42))

	gotP, gotF, err := h.PopMax()
	require.NoError(t, err)
	require.Equal(t, p, gotP)
	require.Equal(t, uint64(42), gotF)
}

func TestInsertAlreadyPresent(t *testing.T) {
	h := New()
	p := core.Pair{First: 1, Second: 2}
	require.NoError(t, h.Insert(p, 1))
	require.ErrorIs(t, h.Insert(p, 5), core.ErrAlreadyPresent)
}

func TestUpdateToSameFrequencyKeepsStructure(t *testing.T) {
	h := New()
	pairs := []core.Pair{
		{First: 1, Second: 1},
		{First: 2, Second: 2},
		{First: 3, Second: 3},
		{First: 4, Second: 4},
		{First: 5, Second: 5},
	}
	for i, p := range pairs {
		require.NoError(t, h.Insert(p, uint64(10-i)))
	}
	before := append([]entry(nil), h.xs...)
	h.Update(pairs[2], h.xs[h.idx[pairs[2]]].freq)
	require.Equal(t, before, h.xs)
}

func TestZeroFrequencyTombstoneNeverPopsWhilePositiveExists(t *testing.T) {
	h := New()
	x := core.Pair{First: 1, Second: 1}
	y := core.Pair{First: 2, Second: 2}
	require.NoError(t, h.Insert(x, 3))
	require.NoError(t, h.Insert(y, 1))

	h.Decrement(x)
	h.Decrement(x)
	h.Decrement(x) // freq now 0, tombstoned
	h.Decrement(x) // no-op, already floored at 0

	p, f, err := h.PopMax()
	require.NoError(t, err)
	require.Equal(t, y, p)
	require.Equal(t, uint64(1), f)

	p, f, err = h.PopMax()
	require.NoError(t, err)
	require.Equal(t, x, p)
	require.Equal(t, uint64(0), f)
}

func TestIncrementInsertsAbsentPairAtFrequencyOne(t *testing.T) {
	h := New()
	p := core.Pair{First: 9, Second: 9}
	h.Increment(p)
	f, ok := h.Get(p)
	require.True(t, ok)
	require.Equal(t, uint64(1), f)
}

func TestDecrementAbsentIsNoOp(t *testing.T) {
	h := New()
	h.Decrement(core.Pair{First: 1, Second: 2})
	require.True(t, h.IsEmpty())
}

// Universal invariants (spec.md §8): heap property and index-map
// consistency hold after any sequence of operations.
func TestHeapPropertyAndIndexConsistencyUnderRandomOps(t *testing.T) {
	h := New()
	rng := rand.New(rand.NewSource(1))
	live := map[core.Pair]bool{}

	for i := 0; i < 500; i++ {
		p := core.Pair{First: core.TokenId(rng.Intn(20)), Second: core.TokenId(rng.Intn(20))}
		switch rng.Intn(4) {
		case 0:
			if !live[p] {
				require.NoError(t, h.Insert(p, uint64(rng.Intn(100))))
				live[p] = true
			}
		case 1:
			if live[p] {
				h.Update(p, uint64(rng.Intn(100)))
			}
		case 2:
			h.Increment(p)
			live[p] = true
		case 3:
			h.Decrement(p)
		}
		require.True(t, h.hasHeapProperty())
		require.True(t, h.indexConsistent())
	}

	var prev uint64
	hasPrev := false
	for !h.IsEmpty() {
		_, f, err := h.PopMax()
		require.NoError(t, err)
		if hasPrev {
			require.LessOrEqual(t, f, prev)
		}
		prev, hasPrev = f, true
	}
}

package core

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairString(t *testing.T) {
	require.Equal(t, "(3,9)", Pair{First: 3, Second: 9}.String())
}

func TestPairLessOrdersLexicographically(t *testing.T) {
	pairs := []Pair{
		{First: 2, Second: 1},
		{First: 1, Second: 5},
		{First: 1, Second: 2},
		{First: 2, Second: 0},
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })

	require.Equal(t, []Pair{
		{First: 1, Second: 2},
		{First: 1, Second: 5},
		{First: 2, Second: 0},
		{First: 2, Second: 1},
	}, pairs)
}

func TestPairAsMapKey(t *testing.T) {
	m := map[Pair]int{}
	m[Pair{First: 1, Second: 2}] = 10
	m[Pair{First: 1, Second: 2}] = 20
	require.Len(t, m, 1)
	require.Equal(t, 20, m[Pair{First: 1, Second: 2}])
}

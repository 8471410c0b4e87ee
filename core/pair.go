package core

import "fmt"

// Pair is an ordered 2-tuple of TokenId. Pair equality is componentwise,
// and since it is a plain struct of two uint32s it is directly usable as
// a Go map key with no extra machinery — the same "small value type,
// comparable for free" shape the tensor layer used for Shape equality
// before it compared slices field by field.
type Pair struct {
	First  TokenId
	Second TokenId
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.First, p.Second)
}

// Less orders pairs lexicographically by (First, Second) ascending. It is
// the plain comparator callers reach for outside the heap itself — e.g.
// sorting a merge table for deterministic diffing — where pairheap.Heap's
// own frequency-first, tie-break-desc order would be the wrong tool.
func (p Pair) Less(q Pair) bool {
	if p.First != q.First {
		return p.First < q.First
	}
	return p.Second < q.Second
}

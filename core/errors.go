package core

import "errors"

// Sentinel error kinds shared by skipseq, pairheap and train. Call sites
// wrap these with fmt.Errorf("...: %w", ...) and callers compare with
// errors.Is, the same idiom the tensor/ops layer of this codebase used to
// use for shape errors.
var (
	// ErrOutOfMemory is returned when an allocation fails.
	ErrOutOfMemory = errors.New("bpecore: out of memory")

	// ErrValueTooWide is returned when a token id does not fit in the
	// configured value width.
	ErrValueTooWide = errors.New("bpecore: value too wide for configured width")

	// ErrAlreadyPresent is returned by PairHeap.Insert when the pair is
	// already indexed.
	ErrAlreadyPresent = errors.New("bpecore: pair already present")

	// ErrEmpty is returned by PairHeap.PopMax on an empty heap.
	ErrEmpty = errors.New("bpecore: heap is empty")
)

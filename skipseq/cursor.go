package skipseq

import "github.com/djeday123/bpecore/core"

// Cursor walks the live slots of a Seq in order. It is the sole mutation
// API spec.md §4.1 grants SkipSeq: advance, peek, peek2 and
// ReplaceAndSkipNext. A Cursor never outlives a single Trainer step
// (spec.md §5) — nothing here is safe to share across goroutines.
type Cursor struct {
	seq *Seq
	pos int // -1 = initial state; len(storage) once "end" has been reached
}

func (c *Cursor) anchored() bool {
	return c.pos >= 0 && c.pos < len(c.seq.storage)
}

func (c *Cursor) nextScanFrom() int {
	if c.pos < 0 {
		return 0
	}
	return c.pos + 1
}

// Advance returns the value at the next live position, or ok=false at
// end. After the first call the cursor is anchored there.
func (c *Cursor) Advance() (core.TokenId, bool) {
	idx, ok := c.seq.scanLive(c.nextScanFrom())
	if !ok {
		c.pos = len(c.seq.storage)
		return 0, false
	}
	c.pos = idx
	return c.seq.width.Value(c.seq.storage[idx]), true
}

// Peek returns the value at the next live position after the cursor
// without moving it, or ok=false at end.
func (c *Cursor) Peek() (core.TokenId, bool) {
	idx, ok := c.seq.scanLive(c.nextScanFrom())
	if !ok {
		return 0, false
	}
	return c.seq.width.Value(c.seq.storage[idx]), true
}

// Peek2 returns the value at the live position two steps past the
// cursor, or ok=false at end.
func (c *Cursor) Peek2() (core.TokenId, bool) {
	idx1, ok := c.seq.scanLive(c.nextScanFrom())
	if !ok {
		return 0, false
	}
	idx2, ok := c.seq.scanLive(idx1 + 1)
	if !ok {
		return 0, false
	}
	return c.seq.width.Value(c.seq.storage[idx2]), true
}

// ReplaceAndSkipNext overwrites the value at the cursor with v, deadens
// the next live slot with skip distance 1, and decrements the live
// count. Requires the cursor anchored at a live slot (a replace in the
// initial state, or past end, is a programming bug and panics — spec.md
// §7 permits either assertion or no-op; this package asserts, matching
// the panics the borrowed indexed-heap code already uses for its own
// precondition violations).
func (c *Cursor) ReplaceAndSkipNext(v core.TokenId) {
	if !c.anchored() {
		panic("skipseq: ReplaceAndSkipNext called on a cursor that is not anchored at a live slot")
	}
	if !c.seq.width.Fits(v) {
		panic("skipseq: replacement value does not fit the configured value width")
	}
	c.seq.storage[c.pos] = c.seq.width.Pack(v, 0)

	idx, ok := c.seq.scanLive(c.pos + 1)
	if !ok {
		return
	}
	next := c.seq.width.Value(c.seq.storage[idx])
	c.seq.storage[idx] = c.seq.width.Pack(next, 1)
	c.seq.live--
}

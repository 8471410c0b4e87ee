package core

import "fmt"

// Width is the (W, k) parameterization spec.md §3 and §9 describe: a fixed
// total slot width W (32 bits here) split into a low value field and a high
// skip field of k bits. ValueMask, SkipShift and MaxSkip are pure functions
// of k, computed once at construction and then passed around by value —
// the same split the tensor layer used to use between a Shape and its
// derived Strides.
type Width struct {
	skipBits  uint8
	valueBits uint8
	valueMask uint32
	skipShift uint8
	maxSkip   uint32
}

// totalBits is W: the size of a single SkipSeq slot.
const totalBits = 32

// NewWidth builds a Width for the given skip-field size. skipBits must be
// in [1, 16] per spec.md §6 ("skip_bits (integer, 1..16, default 8)").
func NewWidth(skipBits uint8) (Width, error) {
	if skipBits < 1 || skipBits > 16 {
		return Width{}, fmt.Errorf("bpecore: skip_bits must be in [1,16], got %d", skipBits)
	}
	valueBits := totalBits - skipBits
	return Width{
		skipBits:  skipBits,
		valueBits: valueBits,
		valueMask: uint32(1)<<valueBits - 1,
		skipShift: valueBits,
		maxSkip:   uint32(1)<<skipBits - 1,
	}, nil
}

// DefaultWidth is the reference 8-bit skip field / 24-bit value width.
func DefaultWidth() Width {
	w, err := NewWidth(8)
	if err != nil {
		panic(err) // unreachable: 8 is always in [1,16]
	}
	return w
}

// SkipBits returns k.
func (w Width) SkipBits() uint8 { return w.skipBits }

// ValueBits returns W-k.
func (w Width) ValueBits() uint8 { return w.valueBits }

// ValueMask returns the low-bits mask a TokenId value must fit within.
func (w Width) ValueMask() uint32 { return w.valueMask }

// SkipShift returns the number of low bits the skip field is shifted
// past — the same value ValueBits reports, exposed separately because
// callers bit-packing or unpacking a slot by hand (e.g. a debug dump)
// want "how far to shift" rather than "how many value bits there are"
// even though the two are numerically identical.
func (w Width) SkipShift() uint8 { return w.skipShift }

// MaxSkip returns the largest representable skip distance, 2^k - 1.
func (w Width) MaxSkip() uint32 { return w.maxSkip }

// Fits reports whether v fits in the value field.
func (w Width) Fits(v TokenId) bool {
	return v <= w.valueMask
}

// Pack combines a value and a skip distance into one slot. skip is
// silently clamped to MaxSkip — callers that propagate compounded skip
// distances (spec.md §4.1 "the skip field optionally lengthens over
// time") must clamp explicitly if they care about exactness; construction
// and ReplaceAndSkipNext only ever write skip distances of 0 or 1, which
// always fit.
func (w Width) Pack(value TokenId, skip uint32) uint32 {
	if skip > w.maxSkip {
		skip = w.maxSkip
	}
	return (value & w.valueMask) | (skip << w.skipShift)
}

// Value extracts the value field from a packed slot.
func (w Width) Value(slot uint32) TokenId {
	return slot & w.valueMask
}

// Skip extracts the skip field from a packed slot.
func (w Width) Skip(slot uint32) uint32 {
	return slot >> w.skipShift
}

// IsLive reports whether a packed slot's skip field is zero.
func (w Width) IsLive(slot uint32) bool {
	return w.Skip(slot) == 0
}

package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWidthRejectsOutOfRange(t *testing.T) {
	_, err := NewWidth(0)
	require.Error(t, err)

	_, err = NewWidth(17)
	require.Error(t, err)
}

func TestDefaultWidthLayout(t *testing.T) {
	w := DefaultWidth()
	require.Equal(t, uint8(8), w.SkipBits())
	require.Equal(t, uint8(24), w.ValueBits())
	require.Equal(t, uint32(1<<24-1), w.ValueMask())
	require.Equal(t, uint32(1<<8-1), w.MaxSkip())
	require.Equal(t, w.ValueBits(), w.SkipShift())
}

func TestPackAndExtractRoundTrip(t *testing.T) {
	w := DefaultWidth()
	slot := w.Pack(12345, 7)
	require.Equal(t, TokenId(12345), w.Value(slot))
	require.Equal(t, uint32(7), w.Skip(slot))
	require.False(t, w.IsLive(slot))

	live := w.Pack(99, 0)
	require.True(t, w.IsLive(live))
}

func TestPackClampsSkipToMaxSkip(t *testing.T) {
	w, err := NewWidth(1) // maxSkip = 1
	require.NoError(t, err)

	slot := w.Pack(1, 5)
	require.Equal(t, w.MaxSkip(), w.Skip(slot))
}

func TestFits(t *testing.T) {
	w := DefaultWidth()
	require.True(t, w.Fits(w.ValueMask()))
	require.False(t, w.Fits(w.ValueMask()+1))
}

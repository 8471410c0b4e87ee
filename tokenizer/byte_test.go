package tokenizer

import (
	"testing"

	"github.com/djeday123/bpecore/core"
	"github.com/stretchr/testify/require"
)

func TestWidenBytes(t *testing.T) {
	got := WidenBytes([]byte{0, 1, 255})
	require.Equal(t, []core.TokenId{0, 1, 255}, got)
}

func TestByteTokenizerRoundTrip(t *testing.T) {
	bt := NewByteTokenizer()
	text := "hello, world"
	require.Equal(t, text, bt.Decode(bt.Encode(text)))
	require.Equal(t, 256, bt.VocabSize())
}

package tokenizer

import "github.com/djeday123/bpecore/core"

// WidenBytes converts raw bytes into the core.TokenId sequence a
// train.Trainer or ByteTokenizer operates on — byte value i widens to
// core.TokenId(i), the identity embedding every other token id layout in
// this package builds on.
func WidenBytes(data []byte) []core.TokenId {
	ids := make([]core.TokenId, len(data))
	for i, b := range data {
		ids[i] = core.TokenId(b)
	}
	return ids
}

// ByteTokenizer is the simplest tokenizer: each byte is its own token,
// vocab size 256, no subword merging. BPETokenizer.Decode does not fall
// back to it: ids missing from a BPETokenizer's vocab are skipped.
type ByteTokenizer struct{}

func NewByteTokenizer() *ByteTokenizer { return &ByteTokenizer{} }

func (t *ByteTokenizer) Encode(text string) []core.TokenId {
	return WidenBytes([]byte(text))
}

func (t *ByteTokenizer) Decode(tokens []core.TokenId) string {
	bytes := make([]byte, len(tokens))
	for i, id := range tokens {
		bytes[i] = byte(id)
	}
	return string(bytes)
}

func (t *ByteTokenizer) DecodeToken(token core.TokenId) string {
	return string([]byte{byte(token)})
}

func (t *ByteTokenizer) VocabSize() int { return NumBytes }

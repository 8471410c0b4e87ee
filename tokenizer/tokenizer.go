// Package tokenizer turns raw bytes into core.TokenId sequences and back,
// and hosts the BPE vocabulary built from a train.Trainer run.
package tokenizer

import "github.com/djeday123/bpecore/core"

// Tokenizer is the common interface for both the plain byte tokenizer and
// the trained BPE tokenizer.
type Tokenizer interface {
	Encode(text string) []core.TokenId
	Decode(tokens []core.TokenId) string
	VocabSize() int
}

// Token ID layout shared by every tokenizer this package produces:
//
//	0-255:   raw bytes
//	256:     <pad>
//	257:     <bos>
//	258:     <eos>
//	259:     <unk>
//	260+:    BPE merges, ordered by merge priority
const NumBytes = 256

const (
	PadID        core.TokenId = 256
	BosID        core.TokenId = 257
	EosID        core.TokenId = 258
	UnkID        core.TokenId = 259
	FirstMergeID core.TokenId = 260
)

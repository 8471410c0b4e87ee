package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/djeday123/bpecore/core"
	"github.com/djeday123/bpecore/train"
)

// MergeTable is a train.MergeSink that builds a BPE vocabulary as merges
// are reported: each new token id's byte sequence is the concatenation of
// its two component tokens' byte sequences, so the vocabulary can be
// rebuilt from the merge list alone (spec.md §3's "ordered pair list").
type MergeTable struct {
	merges []core.Pair
	vocab  map[core.TokenId][]byte
}

// NewMergeTable returns an empty MergeTable seeded with the base
// byte/special vocabulary, ready to be passed to train.Trainer.Train (or
// combined with other sinks via train.MultiSink) as a train.MergeSink.
func NewMergeTable() *MergeTable { return newMergeTable() }

func newMergeTable() *MergeTable {
	mt := &MergeTable{vocab: make(map[core.TokenId][]byte, 512)}
	for i := 0; i < NumBytes; i++ {
		mt.vocab[core.TokenId(i)] = []byte{byte(i)}
	}
	mt.vocab[PadID] = []byte("<pad>")
	mt.vocab[BosID] = []byte("<bos>")
	mt.vocab[EosID] = []byte("<eos>")
	mt.vocab[UnkID] = []byte("<unk>")
	return mt
}

func (mt *MergeTable) Report(pair core.Pair, id core.TokenId) {
	mt.merges = append(mt.merges, pair)
	mt.vocab[id] = concatBytes(mt.vocab[pair.First], mt.vocab[pair.Second])
}

// Tokenizer builds a BPETokenizer from the merges reported so far.
func (mt *MergeTable) Tokenizer() *BPETokenizer {
	return &BPETokenizer{
		merges:    append([]core.Pair(nil), mt.merges...),
		vocab:     mt.vocab,
		vocabSize: int(FirstMergeID) + len(mt.merges),
	}
}

// BPETokenizer implements byte-level BPE (Sennrich et al., 2016) encoding
// and decoding from a merge list trained by train.Trainer.
//
// Encoding applies each learned merge in training order, the same order
// train.Trainer emitted them in, which reproduces the training-time
// segmentation exactly. This is O(len(text) × num_merges) worst case; a
// production encoder serving many requests against a large merge list
// would want the same SkipSeq/PairHeap machinery training uses, run once
// per input instead of once per merge, but that optimization is out of
// scope here — spec.md's object is the trainer, not an encoder fast path.
type BPETokenizer struct {
	merges    []core.Pair
	vocab     map[core.TokenId][]byte
	vocabSize int
}

// TrainBPE trains a byte-level BPE tokenizer on data, stopping at
// targetVocabSize or whichever of train.Trainer's other termination
// conditions fires first (spec.md §4.3). width controls the SkipSeq skip
// field the trainer uses internally; it has no effect on the resulting
// vocabulary.
func TrainBPE(data []byte, width core.Width, targetVocabSize int) (*BPETokenizer, train.Stats, error) {
	mt := newMergeTable()
	tr, err := train.New(WidenBytes(data), train.Config{
		Width:           width,
		FirstEmitID:     FirstMergeID,
		TargetVocabSize: targetVocabSize,
	})
	if err != nil {
		return nil, train.Stats{}, fmt.Errorf("tokenizer: train bpe: %w", err)
	}
	stats := tr.Train(mt)
	return mt.Tokenizer(), stats, nil
}

// Encode converts text to a sequence of BPE token ids by widening to
// bytes and then replaying every learned merge in training order.
func (t *BPETokenizer) Encode(text string) []core.TokenId {
	ids := WidenBytes([]byte(text))
	for i, pair := range t.merges {
		newID := FirstMergeID + core.TokenId(i)
		ids = replacePair(ids, pair.First, pair.Second, newID)
	}
	return ids
}

// EncodeWithSpecials wraps text in <bos> ... <eos> tokens.
func (t *BPETokenizer) EncodeWithSpecials(text string) []core.TokenId {
	tokens := t.Encode(text)
	result := make([]core.TokenId, 0, len(tokens)+2)
	result = append(result, BosID)
	result = append(result, tokens...)
	result = append(result, EosID)
	return result
}

// Decode converts BPE token ids back to text. Unknown ids are silently
// skipped — no <unk> insertion.
func (t *BPETokenizer) Decode(tokens []core.TokenId) string {
	var buf []byte
	for _, id := range tokens {
		if b, ok := t.vocab[id]; ok {
			buf = append(buf, b...)
		}
	}
	return string(buf)
}

func (t *BPETokenizer) DecodeToken(id core.TokenId) string {
	if b, ok := t.vocab[id]; ok {
		return string(b)
	}
	return "<unk>"
}

func (t *BPETokenizer) VocabSize() int { return t.vocabSize }

func (t *BPETokenizer) NumMerges() int { return len(t.merges) }

// MergeAt returns the i'th merge pair in training/emission order.
func (t *BPETokenizer) MergeAt(i int) core.Pair { return t.merges[i] }

// TokenBytes returns the raw byte sequence for a token id.
func (t *BPETokenizer) TokenBytes(id core.TokenId) ([]byte, bool) {
	b, ok := t.vocab[id]
	return b, ok
}

// Save writes the merge rules to path, one pair per line, in the same
// plain-text format Load reads back — the vocabulary is never written
// directly since it is always reconstructible from the merges alone.
//
// Format:
//
//	# bpecore merges v1
//	# vocab_size 4356
//	# num_merges 4096
//	101 32
//	116 104
//	...
func (t *BPETokenizer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# bpecore merges v1\n")
	fmt.Fprintf(w, "# vocab_size %d\n", t.vocabSize)
	fmt.Fprintf(w, "# num_merges %d\n", len(t.merges))
	for _, m := range t.merges {
		fmt.Fprintf(w, "%d %d\n", m.First, m.Second)
	}
	return w.Flush()
}

// LoadBPE reads a merge file written by Save and rebuilds the full
// vocabulary by replaying each merge's byte concatenation in order.
func LoadBPE(path string) (*BPETokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mt := newMergeTable()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("tokenizer: load bpe: malformed line %q", line)
		}
		a, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tokenizer: load bpe: %w", err)
		}
		b, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tokenizer: load bpe: %w", err)
		}
		id := FirstMergeID + core.TokenId(len(mt.merges))
		mt.Report(core.Pair{First: core.TokenId(a), Second: core.TokenId(b)}, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &BPETokenizer{
		merges:    mt.merges,
		vocab:     mt.vocab,
		vocabSize: int(FirstMergeID) + len(mt.merges),
	}, nil
}

// replacePair scans ids and replaces every adjacent (a, b) with newID,
// left to right, non-overlapping — the same rule train.Trainer's
// applyMerge enforces via ReplaceAndSkipNext.
func replacePair(ids []core.TokenId, a, b, newID core.TokenId) []core.TokenId {
	found := false
	for i := 0; i < len(ids)-1; i++ {
		if ids[i] == a && ids[i+1] == b {
			found = true
			break
		}
	}
	if !found {
		return ids
	}

	out := make([]core.TokenId, 0, len(ids))
	i := 0
	for i < len(ids) {
		if i+1 < len(ids) && ids[i] == a && ids[i+1] == b {
			out = append(out, newID)
			i += 2
		} else {
			out = append(out, ids[i])
			i++
		}
	}
	return out
}

func concatBytes(a, b []byte) []byte {
	c := make([]byte, len(a)+len(b))
	copy(c, a)
	copy(c[len(a):], b)
	return c
}

// bpetrain trains a byte-level BPE vocabulary from a text file using the
// bpecore training core: a bit-packed skipping sequence and an indexed
// max-heap over pair frequencies, instead of a full-rescan loop.
//
// Usage:
//
//	go run ./cmd/bpetrain -input corpus.txt -output corpus.merges -target-vocab 8000
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/djeday123/bpecore/core"
	"github.com/djeday123/bpecore/pkg/config"
	"github.com/djeday123/bpecore/tokenizer"
	"github.com/djeday123/bpecore/train"
)

func main() {
	input := flag.String("input", "", "path to the training corpus (required)")
	output := flag.String("output", "", "path to write the merge table (default: <input>.merges)")
	configPath := flag.String("config", "", "path to a JSON config file (default: built-in defaults)")
	skipBits := flag.Uint("skip-bits", 0, "override skip_bits (1-16, 0 = use config)")
	targetVocab := flag.Int("target-vocab", 0, "override target_vocab_size (0 = use config)")
	firstEmitID := flag.Uint("first-emit-id", 0, "override first_emit_id (0 = use config)")
	progressEvery := flag.Int("progress-every", 0, "print a progress line every N merges (0 = use config)")
	dumpSlots := flag.String("dump-slots", "", "optional path to dump the final live token ids as little-endian uint32s")
	listMerges := flag.Bool("list-merges", false, "print the trained merge pairs sorted by (first, second) instead of emission order")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `bpetrain — train a byte-level BPE vocabulary

Usage:
  go run ./cmd/bpetrain -input corpus.txt [flags]

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "bpetrain: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *skipBits != 0 {
		cfg.SkipBits = uint8(*skipBits)
	}
	if *targetVocab != 0 {
		cfg.TargetVocabSize = *targetVocab
	}
	if *firstEmitID != 0 {
		cfg.FirstEmitID = core.TokenId(*firstEmitID)
	}
	if *progressEvery != 0 {
		cfg.ProgressEvery = *progressEvery
	}

	outPath := *output
	if outPath == "" {
		outPath = *input + ".merges"
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
		os.Exit(1)
	}

	trainerCfg, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== bpetrain ===\n")
	fmt.Printf("Input:        %s (%d bytes)\n", *input, len(data))
	fmt.Printf("skip_bits:    %d\n", cfg.SkipBits)
	fmt.Printf("first_emit:   %d\n", cfg.FirstEmitID)
	fmt.Printf("target_vocab: %d\n\n", cfg.TargetVocabSize)

	tr, err := train.New(tokenizer.WidenBytes(data), trainerCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	mt := tokenizer.NewMergeTable()
	progress := newProgressSink(cfg.ProgressEvery, int(cfg.FirstEmitID), start)
	stats := tr.Train(train.MultiSink{mt, progress})

	fmt.Printf("\n=== Done ===\n")
	fmt.Printf("Merges:        %d\n", stats.MergesEmitted)
	fmt.Printf("Vocab size:    %d\n", stats.FinalVocabSize)
	fmt.Printf("Live tokens:   %d\n", stats.FinalLiveCount)
	fmt.Printf("Stopped on:    %s\n", stopReason(stats))
	fmt.Printf("Time:          %s\n", time.Since(start).Truncate(time.Millisecond))

	bt := mt.Tokenizer()
	if err := bt.Save(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Merges saved:  %s\n", outPath)

	if *dumpSlots != "" {
		if err := dumpLiveValues(*dumpSlots, tr.Seq().LiveValues()); err != nil {
			fmt.Fprintf(os.Stderr, "bpetrain: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Slots dumped:  %s\n", *dumpSlots)
	}

	if *listMerges {
		printSortedMerges(bt)
	}
}

// printSortedMerges prints every trained merge pair in ascending
// (first, second) order rather than emission order, using core.Pair.Less
// as the sort comparator — a deterministic diffing view onto a merge
// table that doesn't depend on the order merges happened to be learned in.
func printSortedMerges(bt *tokenizer.BPETokenizer) {
	pairs := make([]core.Pair, bt.NumMerges())
	for i := 0; i < bt.NumMerges(); i++ {
		pairs[i] = bt.MergeAt(i)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })

	fmt.Printf("\n=== Merges (sorted) ===\n")
	for _, p := range pairs {
		fmt.Printf("%s\n", p)
	}
}

func stopReason(stats train.Stats) string {
	switch {
	case stats.StoppedOnTarget:
		return "target vocab size reached"
	case stats.StoppedOnHeap:
		return "heap exhausted"
	case stats.StoppedOnLive:
		return "fewer than two live tokens remain"
	default:
		return "no pair with positive frequency remains"
	}
}

// dumpLiveValues writes values as little-endian uint32s — a debug escape
// hatch for inspecting the trained sequence without going through the
// merge-table text format.
func dumpLiveValues(path string, values []core.TokenId) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 4)
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf, uint32(v))
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

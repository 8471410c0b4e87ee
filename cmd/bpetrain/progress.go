package main

import (
	"fmt"
	"time"

	"github.com/djeday123/bpecore/core"
	"github.com/djeday123/bpecore/train"
)

// newProgressSink returns a train.SinkFunc closure that prints a throttled
// status line every N merges, in the same \r-overwritten style the
// teacher's wikiextract tool uses for long-running scans. The counter and
// timer it closes over replace what would otherwise be a dedicated sink
// struct's fields.
func newProgressSink(every, firstID int, start time.Time) train.SinkFunc {
	if every <= 0 {
		every = 500
	}
	seen := 0
	return func(pair core.Pair, id core.TokenId) {
		seen++
		if seen%every != 0 {
			return
		}
		elapsed := time.Since(start)
		rate := float64(seen) / elapsed.Seconds()
		fmt.Printf("\r  merge %6d  id=%-7d  last=%s  %.0f merges/s    ",
			seen, id, pair, rate)
	}
}

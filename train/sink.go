package train

import "github.com/djeday123/bpecore/core"

// MergeSink receives one Report call per merge, in emission order —
// spec.md §3: "merges may be reported on a consumer-supplied sink."
type MergeSink interface {
	Report(pair core.Pair, id core.TokenId)
}

// MultiSink fans a single Report out to every sink in the slice, letting
// a caller combine e.g. a vocabulary builder and a progress printer
// without either knowing about the other — the same role the teacher's
// Trainer played driving a model, an optimizer and a tokenizer from one
// loop.
type MultiSink []MergeSink

func (m MultiSink) Report(pair core.Pair, id core.TokenId) {
	for _, s := range m {
		s.Report(pair, id)
	}
}

// SinkFunc adapts a plain function to MergeSink.
type SinkFunc func(pair core.Pair, id core.TokenId)

func (f SinkFunc) Report(pair core.Pair, id core.TokenId) { f(pair, id) }

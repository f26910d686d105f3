package rnng

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	nlp "github.com/daandouwe/rnng/nlp/types"
	"github.com/daandouwe/rnng/util"
)

// DecodeParallel decodes a corpus with workers goroutines, each over its
// own contiguous chunk, and returns the per-sentence results in corpus
// order. newDecoder is called once per worker: decoders that own mutable
// state (a random source) must not be shared, so each worker gets a
// fresh one. workers < 1 uses all CPUs.
func DecodeParallel(newDecoder func(worker int) Decoder, sents []nlp.BasicSentence, workers int) ([][]ScoredTree, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(sents) {
		workers = len(sents)
	}
	results := make([][]ScoredTree, len(sents))
	if len(sents) == 0 {
		return results, nil
	}
	chunk := util.CeilDiv(len(sents), workers)
	var group errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := util.Min(start+chunk, len(sents))
		if start >= end {
			break
		}
		decoder := newDecoder(w)
		group.Go(func() error {
			for i := start; i < end; i++ {
				decoded, err := decoder.Decode(sents[i])
				if err != nil {
					return err
				}
				results[i] = decoded
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

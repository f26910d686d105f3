package rnng

import (
	"math/rand"

	nlp "github.com/daandouwe/rnng/nlp/types"
)

// SamplingDecoder draws derivations from the model's conditional
// distribution over legal actions. Alpha < 1 flattens every choice
// distribution, trading probability mass for diversity; the main use is
// generating proposal samples for importance estimation.
//
// A SamplingDecoder is not safe for concurrent use (it owns its random
// source); give each worker its own, as DecodeParallel does.
type SamplingDecoder struct {
	System     *RNNG
	NumSamples int
	Alpha      float64

	rng *rand.Rand
}

var _ Decoder = &SamplingDecoder{}

func NewSamplingDecoder(system *RNNG, numSamples int, alpha float64, seed int64) *SamplingDecoder {
	if system.Generative() {
		panic("conditional sampling needs a discriminative system; use GenerativeSamplingDecoder")
	}
	if numSamples < 1 {
		panic("need at least one sample")
	}
	if alpha <= 0 {
		panic("alpha must be positive")
	}
	return &SamplingDecoder{
		System:     system,
		NumSamples: numSamples,
		Alpha:      alpha,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (d *SamplingDecoder) Decode(sent nlp.BasicSentence) ([]ScoredTree, error) {
	words, err := d.System.Vocab.WordIDs(sent)
	if err != nil {
		return nil, err
	}
	samples := make([]ScoredTree, 0, d.NumSamples)
	for i := 0; i < d.NumSamples; i++ {
		sample, err := d.System.decode(words, d.Alpha, d.choose)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (d *SamplingDecoder) choose(logProbs []float64) int {
	return sampleLogProbs(logProbs, d.rng)
}

func (d *SamplingDecoder) Name() string {
	return "Ancestral sampling decoder"
}

package rnng

import (
	"math/rand"

	nlp "github.com/daandouwe/rnng/nlp/types"
)

// GenerativeSamplingDecoder draws (sentence, tree) pairs from the joint
// distribution of a generative system: there is no input, the model
// produces the words itself through GEN.
type GenerativeSamplingDecoder struct {
	System *RNNG
	Alpha  float64

	rng *rand.Rand
}

func NewGenerativeSamplingDecoder(system *RNNG, alpha float64, seed int64) *GenerativeSamplingDecoder {
	if !system.Generative() {
		panic("joint sampling needs a generative system")
	}
	if alpha <= 0 {
		panic("alpha must be positive")
	}
	return &GenerativeSamplingDecoder{
		System: system,
		Alpha:  alpha,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Sample draws one complete derivation; the sampled sentence is the
// tree's leaves.
func (d *GenerativeSamplingDecoder) Sample() (ScoredTree, error) {
	return d.System.decode(nil, d.Alpha, d.choose)
}

// SampleN draws n derivations.
func (d *GenerativeSamplingDecoder) SampleN(n int) ([]ScoredTree, error) {
	samples := make([]ScoredTree, 0, n)
	for i := 0; i < n; i++ {
		sample, err := d.Sample()
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// Sentence extracts the generated words of a sampled derivation.
func (d *GenerativeSamplingDecoder) Sentence(sample ScoredTree) nlp.BasicSentence {
	leaves := sample.Tree.Leaves()
	sent := make(nlp.BasicSentence, len(leaves))
	for i, leaf := range leaves {
		sent[i] = nlp.Token(leaf)
	}
	return sent
}

func (d *GenerativeSamplingDecoder) choose(logProbs []float64) int {
	return sampleLogProbs(logProbs, d.rng)
}

func (d *GenerativeSamplingDecoder) Name() string {
	return "Generative joint sampling decoder"
}

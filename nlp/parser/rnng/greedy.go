package rnng

import (
	"gonum.org/v1/gonum/floats"

	nlp "github.com/daandouwe/rnng/nlp/types"
)

// GreedyDecoder takes the highest-probability legal action at every
// configuration. Equivalent to beam search with width 1.
type GreedyDecoder struct {
	System *RNNG
}

var _ Decoder = &GreedyDecoder{}

func NewGreedyDecoder(system *RNNG) *GreedyDecoder {
	if system.Generative() {
		panic("greedy decoding conditions on an input sentence; use a discriminative system")
	}
	return &GreedyDecoder{System: system}
}

func (d *GreedyDecoder) Decode(sent nlp.BasicSentence) ([]ScoredTree, error) {
	words, err := d.System.Vocab.WordIDs(sent)
	if err != nil {
		return nil, err
	}
	tree, err := d.System.decode(words, 1, floats.MaxIdx)
	if err != nil {
		return nil, err
	}
	return []ScoredTree{tree}, nil
}

func (d *GreedyDecoder) Name() string {
	return "Greedy decoder"
}

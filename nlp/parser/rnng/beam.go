package rnng

import (
	"fmt"
	"sort"

	"github.com/daandouwe/rnng/alg/search"
	"github.com/daandouwe/rnng/alg/transition"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

// BeamSearchDecoder explores width derivations in parallel through the
// generic beam machinery. Width 1 reproduces the greedy decoder.
type BeamSearchDecoder struct {
	System *RNNG
	Width  int
}

var _ Decoder = &BeamSearchDecoder{}
var _ search.Interface = &BeamSearchDecoder{}

func NewBeamSearchDecoder(system *RNNG, width int) *BeamSearchDecoder {
	if system.Generative() {
		panic("beam search conditions on an input sentence; use a discriminative system")
	}
	if width < 1 {
		panic("beam width must be positive")
	}
	return &BeamSearchDecoder{System: system, Width: width}
}

// scoredConfiguration is one beam candidate: a parser state with its
// cumulative derivation log probability.
type scoredConfiguration struct {
	conf  *Configuration
	score float64
}

var _ search.Candidate = &scoredConfiguration{}

func (s *scoredConfiguration) Copy() search.Candidate {
	return &scoredConfiguration{conf: s.conf.Copy().(*Configuration), score: s.score}
}

func (s *scoredConfiguration) Score() float64 {
	return s.score
}

func (s *scoredConfiguration) Len() int {
	return s.conf.Len()
}

func (s *scoredConfiguration) Terminal() bool {
	return s.conf.Terminal()
}

func (d *BeamSearchDecoder) Decode(sent nlp.BasicSentence) ([]ScoredTree, error) {
	words, err := d.System.Vocab.WordIDs(sent)
	if err != nil {
		return nil, err
	}
	finished, err := search.Search(d, words, d.Width)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, fmt.Errorf("beam search finished no derivation for %q", sent.String())
	}
	trees := make([]ScoredTree, len(finished))
	for i, candidate := range finished {
		c := candidate.(*scoredConfiguration)
		tree, err := c.conf.Stack.Tree()
		if err != nil {
			return nil, err
		}
		trees[i] = ScoredTree{Tree: tree, LogProb: c.score, Actions: c.conf.Actions()}
	}
	return trees, nil
}

func (d *BeamSearchDecoder) StartItem(p search.Problem) ([]search.Candidate, error) {
	words, ok := p.([]int)
	if !ok {
		panic("Got wrong problem type")
	}
	start := d.System.StartConfiguration(words)
	return []search.Candidate{&scoredConfiguration{conf: start}}, nil
}

// Expand scores a candidate's continuations over the best width legal
// coarse actions. SHIFT and REDUCE contribute one child each; OPEN fans
// out over labels, and gets the slots the other selected actions leave
// unused so that a lone OPEN can fill the whole beam.
func (d *BeamSearchDecoder) Expand(c search.Candidate, p search.Problem, width int) ([]search.Candidate, error) {
	parent, ok := c.(*scoredConfiguration)
	if !ok {
		panic("Got wrong candidate type")
	}
	r := d.System
	conf := parent.conf
	state := conf.Representation()
	mask := r.coarseMask(conf)
	actionLogProbs := maskedLogSoftmax(r.Model.ScoreActions(state), mask, 1)
	// only the best width coarse actions expand; the rest of the beam
	// budget goes to OPEN's label fan-out below
	selected := make([]int, 0, NumCoarseActions)
	for _, coarse := range topIndices(actionLogProbs, width) {
		if mask[coarse] {
			selected = append(selected, coarse)
		}
	}
	children := make([]search.Candidate, 0, width)
	fire := func(value int, logProb float64) error {
		next, err := r.Transition(conf, &transition.TypedTransition{T: TransitionType, V: value})
		if err != nil {
			return err
		}
		children = append(children, &scoredConfiguration{
			conf:  next.(*Configuration),
			score: parent.score + logProb,
		})
		return nil
	}
	for _, coarse := range selected {
		switch coarse {
		case Shift:
			if err := fire(r.Vocab.SHIFT, actionLogProbs[Shift]); err != nil {
				return nil, err
			}
		case Reduce:
			if err := fire(r.Vocab.REDUCE, actionLogProbs[Reduce]); err != nil {
				return nil, err
			}
		case Open:
			labelLogProbs := maskedLogSoftmax(r.Model.ScoreLabels(state), nil, 1)
			for _, label := range topIndices(labelLogProbs, width-len(selected)+1) {
				if err := fire(r.Vocab.NT+label, actionLogProbs[Open]+labelLogProbs[label]); err != nil {
					return nil, err
				}
			}
		}
	}
	return children, nil
}

func (d *BeamSearchDecoder) Name() string {
	return fmt.Sprintf("Beam search decoder (width %d)", d.Width)
}

// topIndices returns the indices of the n largest values, best first;
// at least one is always returned. Ties keep index order.
func topIndices(values []float64, n int) []int {
	if n < 1 {
		n = 1
	}
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return values[indices[i]] > values[indices[j]]
	})
	if n < len(indices) {
		indices = indices[:n]
	}
	return indices
}

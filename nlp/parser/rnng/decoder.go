package rnng

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/daandouwe/rnng/alg/transition"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

// MaxDecodeSteps bounds a single greedy or sampled derivation. The
// legality predicate guarantees discriminative termination; generative
// derivations can in principle generate forever, so runaways abort.
const MaxDecodeSteps = 800

// Decoder is the sentence-conditioned decoding surface shared by the
// greedy, sampling and beam-search strategies.
type Decoder interface {
	Decode(sent nlp.BasicSentence) ([]ScoredTree, error)
	Name() string
}

// ScoredTree is a decoded parse with its derivation and total model
// log probability.
type ScoredTree struct {
	Tree    nlp.TreeNode
	LogProb float64
	Actions []transition.Transition
}

func (s ScoredTree) String() string {
	return fmt.Sprintf("%.4f\t%s", s.LogProb, nlp.Linearized(s.Tree, false))
}

// logSoftmax normalizes logits into log probabilities.
func logSoftmax(logits []float64) []float64 {
	logZ := floats.LogSumExp(logits)
	out := make([]float64, len(logits))
	for i, logit := range logits {
		out[i] = logit - logZ
	}
	return out
}

// maskedLogSoftmax normalizes logits with illegal entries forced to
// -Inf. alpha > 0 exponentiates the normalized distribution (alpha < 1
// flattens it, as used for proposal sampling); alpha == 1 is the plain
// distribution. At least one entry must be legal.
func maskedLogSoftmax(logits []float64, legal []bool, alpha float64) []float64 {
	masked := make([]float64, len(logits))
	any := false
	for i, logit := range logits {
		if legal == nil || legal[i] {
			masked[i] = logit
			any = true
		} else {
			masked[i] = math.Inf(-1)
		}
	}
	if !any {
		panic("no legal action to normalize over")
	}
	out := logSoftmax(masked)
	if alpha != 1 {
		for i := range out {
			if !math.IsInf(out[i], -1) {
				out[i] *= alpha
			}
		}
		out = logSoftmax(out)
	}
	return out
}

// sampleLogProbs draws an index from a log-probability vector.
func sampleLogProbs(logProbs []float64, rng *rand.Rand) int {
	u := rng.Float64()
	cumulative := 0.0
	last := -1
	for i, lp := range logProbs {
		if math.IsInf(lp, -1) {
			continue
		}
		last = i
		cumulative += math.Exp(lp)
		if u < cumulative {
			return i
		}
	}
	// Rounding can leave cumulative a hair under 1; fall back to the last
	// legal index.
	if last < 0 {
		panic("no legal index to sample")
	}
	return last
}

// step is one decoded transition with its model log probability, already
// resolved down to the flat transition space.
type step struct {
	value   int
	logProb float64
}

// coarseMask evaluates the three-way legality of a configuration.
func (r *RNNG) coarseMask(c *Configuration) []bool {
	mask := make([]bool, NumCoarseActions)
	for coarse := 0; coarse < NumCoarseActions; coarse++ {
		mask[coarse] = r.LegalCoarse(c, coarse)
	}
	return mask
}

// pick resolves a coarse action choice into a flat transition, scoring
// the label (for OPEN) or word (for GEN) sub-choice with the same
// choose function. choose maps a log-probability vector to an index.
func (r *RNNG) pick(c *Configuration, state []float64, alpha float64,
	choose func([]float64) int) (step, error) {

	actionLogProbs := maskedLogSoftmax(r.Model.ScoreActions(state), r.coarseMask(c), alpha)
	coarse := choose(actionLogProbs)
	logProb := actionLogProbs[coarse]
	v := r.Vocab
	switch coarse {
	case Shift:
		if !r.Generative() {
			return step{value: v.SHIFT, logProb: logProb}, nil
		}
		gm := r.Model.(GenerativeModel)
		wordLogProbs := maskedLogSoftmax(gm.ScoreWords(state), nil, alpha)
		word := choose(wordLogProbs)
		return step{value: v.GEN + word, logProb: logProb + wordLogProbs[word]}, nil
	case Reduce:
		return step{value: v.REDUCE, logProb: logProb}, nil
	case Open:
		labelLogProbs := maskedLogSoftmax(r.Model.ScoreLabels(state), nil, alpha)
		label := choose(labelLogProbs)
		return step{value: v.NT + label, logProb: logProb + labelLogProbs[label]}, nil
	}
	return step{}, fmt.Errorf("chose unknown coarse action %d", coarse)
}

// decode runs one derivation to completion with the given choose
// function, accumulating the derivation log probability.
func (r *RNNG) decode(words []int, alpha float64, choose func([]float64) int) (ScoredTree, error) {
	var conf transition.Configuration = r.StartConfiguration(words)
	logProb := 0.0
	for !conf.Terminal() {
		c := conf.(*Configuration)
		if c.Len() >= MaxDecodeSteps {
			return ScoredTree{}, fmt.Errorf("derivation exceeded %d actions", MaxDecodeSteps)
		}
		chosen, err := r.pick(c, c.Representation(), alpha, choose)
		if err != nil {
			return ScoredTree{}, err
		}
		next, err := r.Transition(conf, &transition.TypedTransition{T: TransitionType, V: chosen.value})
		if err != nil {
			return ScoredTree{}, err
		}
		logProb += chosen.logProb
		conf = next
	}
	final := conf.(*Configuration)
	tree, err := final.Stack.Tree()
	if err != nil {
		return ScoredTree{}, err
	}
	return ScoredTree{Tree: tree, LogProb: logProb, Actions: final.Actions()}, nil
}

// Score computes the model log probability of a given transition
// sequence over a sentence: the conditional p(y|x) for discriminative
// systems, the joint p(x,y) for generative ones. The sequence is
// replayed step by step, accumulating the log probability of each gold
// action under the masked distributions.
func (r *RNNG) Score(words []int, actions []transition.Transition) (float64, error) {
	var conf transition.Configuration = r.StartConfiguration(words)
	logProb := 0.0
	v := r.Vocab
	for i, action := range actions {
		c := conf.(*Configuration)
		state := c.Representation()
		value := action.Value()
		coarse := v.Coarse(value)
		actionLogProbs := maskedLogSoftmax(r.Model.ScoreActions(state), r.coarseMask(c), 1)
		logProb += actionLogProbs[coarse]
		switch {
		case v.IsNT(value):
			labelLogProbs := maskedLogSoftmax(r.Model.ScoreLabels(state), nil, 1)
			logProb += labelLogProbs[v.NTLabel(value)]
		case v.IsGEN(value):
			gm := r.Model.(GenerativeModel)
			wordLogProbs := maskedLogSoftmax(gm.ScoreWords(state), nil, 1)
			logProb += wordLogProbs[v.GENWord(value)]
		}
		next, err := r.Transition(conf, action)
		if err != nil {
			return 0, fmt.Errorf("scoring failed at action %d: %w", i, err)
		}
		conf = next
	}
	if !conf.Terminal() {
		return 0, &MalformedOracleError{
			Index:  len(actions),
			Reason: "sequence ended before the parse finished",
		}
	}
	return logProb, nil
}

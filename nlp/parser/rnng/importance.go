package rnng

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/daandouwe/rnng/nlp/format/bracket"
	"github.com/daandouwe/rnng/nlp/format/sample"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

// WeightedSample is one proposal derivation scored under the joint
// model: the importance weight of the sample is Joint - Proposal.
type WeightedSample struct {
	Tree     nlp.TreeNode
	Proposal float64 // log q(y|x) under the proposal model
	Joint    float64 // log p(x,y) under the joint model
}

// GenerativeImportanceDecoder rescoring: proposal derivations sampled
// from a discriminative model are reweighted under a generative joint
// model. This yields both the approximate MAP parse
//
//	argmax_y p(x,y)  over the distinct proposal trees
//
// and the importance estimate of the sentence marginal
//
//	log p(x) ~ logsumexp_i( log p(x,y_i) - log q(y_i|x) ) - log N
//
// over all N samples, duplicates included.
type GenerativeImportanceDecoder struct {
	System *RNNG
	// NumSamples is the number of proposals expected per sentence; a
	// short group is an error, not a quietly smaller estimate. Zero
	// accepts any nonempty group.
	NumSamples int
}

func NewGenerativeImportanceDecoder(system *RNNG, numSamples int) *GenerativeImportanceDecoder {
	if !system.Generative() {
		panic("importance rescoring needs a generative joint system")
	}
	return &GenerativeImportanceDecoder{System: system, NumSamples: numSamples}
}

// ScoreSamples parses each proposal tree, restores the original sentence
// tokens at its leaves (proposals carry UNK signatures) and replays its
// derivation under the joint model.
func (d *GenerativeImportanceDecoder) ScoreSamples(sent nlp.BasicSentence, proposals []sample.Sample) ([]WeightedSample, error) {
	want := d.NumSamples
	if want == 0 {
		want = 1
	}
	if len(proposals) < want {
		return nil, &SampleCountMismatchError{Want: want, Got: len(proposals)}
	}
	weighted := make([]WeightedSample, 0, len(proposals))
	for i, proposal := range proposals {
		tree, err := bracket.Parse(proposal.Tree)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		tree = d.stripTags(tree)
		if err := substituteLeaves(tree, sent); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		actions, err := ExtractActions(tree, d.System.Vocab)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		joint, err := d.System.Score(nil, actions)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		weighted = append(weighted, WeightedSample{
			Tree:     tree,
			Proposal: proposal.LogProb,
			Joint:    joint,
		})
	}
	return weighted, nil
}

// MapTree returns the best distinct proposal tree by joint probability.
// Duplicate trees (sampling draws them often) are collapsed first, so
// a frequent mediocre parse cannot crowd out a rare better one.
func (d *GenerativeImportanceDecoder) MapTree(weighted []WeightedSample) ScoredTree {
	seen := make(map[string]bool, len(weighted))
	best := ScoredTree{LogProb: math.Inf(-1)}
	for _, w := range weighted {
		key := nlp.Linearized(w.Tree, false)
		if seen[key] {
			continue
		}
		seen[key] = true
		if w.Joint > best.LogProb {
			best = ScoredTree{Tree: w.Tree, LogProb: w.Joint}
		}
	}
	return best
}

// LogProb is the importance estimate of log p(x) over all samples.
func (d *GenerativeImportanceDecoder) LogProb(weighted []WeightedSample) float64 {
	logWeights := make([]float64, len(weighted))
	for i, w := range weighted {
		logWeights[i] = w.Joint - w.Proposal
	}
	return floats.LogSumExp(logWeights) - math.Log(float64(len(weighted)))
}

// Perplexity converts a sentence log probability to per-word perplexity.
func Perplexity(logProb float64, numWords int) float64 {
	return math.Exp(-logProb / float64(numWords))
}

// Rescore is the full pipeline for one sentence: score the proposals and
// reduce them to the MAP tree and the marginal estimate.
func (d *GenerativeImportanceDecoder) Rescore(sent nlp.BasicSentence, proposals []sample.Sample) (ScoredTree, float64, error) {
	weighted, err := d.ScoreSamples(sent, proposals)
	if err != nil {
		return ScoredTree{}, 0, err
	}
	return d.MapTree(weighted), d.LogProb(weighted), nil
}

func (d *GenerativeImportanceDecoder) Name() string {
	return "Generative importance rescorer"
}

// stripTags removes preterminal tag wrappers from a proposal tree. A
// unary node over a leaf is a tag only when its label is not a known
// nonterminal; genuine unary constituents like (VP sleeps) stay intact.
func (d *GenerativeImportanceDecoder) stripTags(node nlp.TreeNode) nlp.TreeNode {
	internal, ok := node.(*nlp.InternalNode)
	if !ok {
		return node
	}
	if len(internal.Children) == 1 {
		if leaf, isLeaf := internal.Children[0].(*nlp.LeafNode); isLeaf {
			if _, known := d.System.Vocab.NonTerminals.IndexOf(internal.Label); !known {
				return leaf
			}
		}
	}
	stripped := &nlp.InternalNode{Label: internal.Label}
	for _, child := range internal.Children {
		stripped.AddChild(d.stripTags(child))
	}
	stripped.Close()
	return stripped
}

// substituteLeaves writes the sentence tokens back into the tree's
// leaves, left to right.
func substituteLeaves(tree nlp.TreeNode, sent nlp.BasicSentence) error {
	position := 0
	var walk func(node nlp.TreeNode) error
	walk = func(node nlp.TreeNode) error {
		internal, ok := node.(*nlp.InternalNode)
		if !ok {
			return nil
		}
		for i, child := range internal.Children {
			if _, isLeaf := child.(*nlp.LeafNode); isLeaf {
				if position >= len(sent) {
					return fmt.Errorf("tree has more leaves than the sentence has tokens (%d)", len(sent))
				}
				internal.Children[i] = &nlp.LeafNode{Word: string(sent[position])}
				position++
				continue
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree); err != nil {
		return err
	}
	if position != len(sent) {
		return fmt.Errorf("tree has %d leaves but the sentence has %d tokens", position, len(sent))
	}
	return nil
}

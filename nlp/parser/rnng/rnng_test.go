package rnng

import (
	"fmt"

	"github.com/daandouwe/rnng/alg/transition"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

var (
	testWords  = []string{"The", "cat", "sleeps"}
	testLabels = []string{"S", "NP", "VP"}

	goldBracket  = "(S (NP The cat) (VP sleeps))"
	testSentence = nlp.BasicSentence{"The", "cat", "sleeps"}
)

func testVocab(generative bool) *Vocab {
	return NewVocab(testWords, testLabels, generative)
}

// scriptedModel scores +10 for the scripted action at every state it was
// taught with learn and is indifferent everywhere else. Embeddings are
// chosen so that distinct parser states have distinct representations.
type scriptedModel struct {
	numLabels int
	actions   map[string]int
	labels    map[string]int
}

var _ Model = &scriptedModel{}

func newScriptedModel(vocab *Vocab) *scriptedModel {
	return &scriptedModel{
		numLabels: vocab.NonTerminals.Len(),
		actions:   make(map[string]int),
		labels:    make(map[string]int),
	}
}

func fingerprint(state []float64) string {
	return fmt.Sprint(state)
}

func (m *scriptedModel) EmbedWord(id int) []float64 {
	return []float64{1, float64(id)}
}

func (m *scriptedModel) EmbedNonTerminal(id int) []float64 {
	return []float64{2, float64(id)}
}

func (m *scriptedModel) EmbedAction(id int) []float64 {
	return []float64{3, float64(id)}
}

func (m *scriptedModel) EmptyEmbedding() []float64 {
	return []float64{0, 0}
}

func (m *scriptedModel) Compose(label []float64, children [][]float64) []float64 {
	sum := label[0] + label[1]
	for _, child := range children {
		sum += child[0] + child[1]
	}
	return []float64{4, sum}
}

func (m *scriptedModel) ScoreActions(state []float64) []float64 {
	logits := make([]float64, NumCoarseActions)
	if coarse, ok := m.actions[fingerprint(state)]; ok {
		logits[coarse] = 10
	}
	return logits
}

func (m *scriptedModel) ScoreLabels(state []float64) []float64 {
	logits := make([]float64, m.numLabels)
	if label, ok := m.labels[fingerprint(state)]; ok {
		logits[label] = 10
	}
	return logits
}

// learn replays a gold derivation and scripts its action at every state
// along the way.
func (m *scriptedModel) learn(r *RNNG, words []int, gold []transition.Transition) error {
	var conf transition.Configuration = r.StartConfiguration(words)
	for _, action := range gold {
		c := conf.(*Configuration)
		fp := fingerprint(c.Representation())
		value := action.Value()
		m.actions[fp] = r.Vocab.Coarse(value)
		if r.Vocab.IsNT(value) {
			m.labels[fp] = r.Vocab.NTLabel(value)
		}
		next, err := r.Transition(conf, action)
		if err != nil {
			return err
		}
		conf = next
	}
	return nil
}

// scriptedSystem builds a discriminative system whose scorer prefers the
// gold derivation of goldBracket.
func scriptedSystem() (*RNNG, []int, []transition.Transition, nlp.TreeNode, error) {
	vocab := testVocab(false)
	model := newScriptedModel(vocab)
	system := NewRNNG(vocab, model)
	tree, err := parseGold()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	gold, err := ExtractActions(tree, vocab)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	words, err := vocab.WordIDs(testSentence)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := model.learn(system, words, gold); err != nil {
		return nil, nil, nil, nil, err
	}
	return system, words, gold, tree, nil
}

func parseGold() (nlp.TreeNode, error) {
	tree := &nlp.InternalNode{Label: "S"}
	np := &nlp.InternalNode{Label: "NP"}
	np.AddChild(&nlp.LeafNode{Word: "The"})
	np.AddChild(&nlp.LeafNode{Word: "cat"})
	np.Close()
	vp := &nlp.InternalNode{Label: "VP"}
	vp.AddChild(&nlp.LeafNode{Word: "sleeps"})
	vp.Close()
	tree.AddChild(np)
	tree.AddChild(vp)
	tree.Close()
	return tree, nil
}

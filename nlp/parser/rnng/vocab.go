package rnng

import (
	"fmt"

	"github.com/daandouwe/rnng/alg/transition"
	nlp "github.com/daandouwe/rnng/nlp/types"
	"github.com/daandouwe/rnng/util"
)

// TransitionType tags every transition fired by this system.
const TransitionType byte = 'R'

// MaxOpenNonTerminals caps nesting depth; OPEN is masked beyond it.
const MaxOpenNonTerminals = 100

// Coarse action indices in the scorer's three-way output space. In
// generative mode the terminal-producing slot is GEN instead of SHIFT.
const (
	Shift  = 0
	Reduce = 1
	Open   = 2

	NumCoarseActions = 3
)

// Vocab resolves words, nonterminal labels and the flat transition space.
// The transition enumeration is laid out as
//
//	SHIFT, REDUCE, NT(X) for every label X, GEN(w) for every word w
//
// with the GEN block present only for generative systems.
type Vocab struct {
	Words        *util.EnumSet
	NonTerminals *util.EnumSet
	Transitions  *util.EnumSet

	// enumeration offsets of the transition blocks
	SHIFT, REDUCE, NT, GEN int

	Generative bool
}

// NewVocab builds the vocabulary from word and nonterminal lists. The word
// list should already include the UNK signature tokens produced by
// util.Unkify for the training data.
func NewVocab(words, nonTerminals []string, generative bool) *Vocab {
	v := &Vocab{
		Words:        util.NewEnumSet(len(words)),
		NonTerminals: util.NewEnumSet(len(nonTerminals)),
		Transitions:  util.NewEnumSet(2 + len(nonTerminals) + len(words)),
		Generative:   generative,
	}
	for _, word := range words {
		v.Words.Add(word)
	}
	for _, label := range nonTerminals {
		v.NonTerminals.Add(label)
	}
	v.SHIFT, _ = v.Transitions.Add("SHIFT")
	v.REDUCE, _ = v.Transitions.Add("REDUCE")
	v.NT = v.Transitions.Len()
	for _, label := range nonTerminals {
		v.Transitions.Add("NT(" + label + ")")
	}
	v.GEN = v.Transitions.Len()
	if generative {
		for _, word := range words {
			v.Transitions.Add("GEN(" + word + ")")
		}
	}
	v.Words.Frozen = true
	v.NonTerminals.Frozen = true
	v.Transitions.Frozen = true
	return v
}

func (v *Vocab) IsNT(value int) bool {
	return value >= v.NT && value < v.GEN
}

func (v *Vocab) IsGEN(value int) bool {
	return v.Generative && value >= v.GEN && value < v.Transitions.Len()
}

// NTLabel returns the nonterminal enumeration index of an NT transition.
func (v *Vocab) NTLabel(value int) int {
	if !v.IsNT(value) {
		panic(fmt.Sprintf("transition %d is not an NT transition", value))
	}
	return value - v.NT
}

// GENWord returns the word enumeration index of a GEN transition.
func (v *Vocab) GENWord(value int) int {
	if !v.IsGEN(value) {
		panic(fmt.Sprintf("transition %d is not a GEN transition", value))
	}
	return value - v.GEN
}

// NTTransition maps a nonterminal index to its flat transition.
func (v *Vocab) NTTransition(label int) transition.Transition {
	return &transition.TypedTransition{T: TransitionType, V: v.NT + label}
}

// GENTransition maps a word index to its flat transition.
func (v *Vocab) GENTransition(word int) transition.Transition {
	return &transition.TypedTransition{T: TransitionType, V: v.GEN + word}
}

func (v *Vocab) ShiftTransition() transition.Transition {
	return &transition.TypedTransition{T: TransitionType, V: v.SHIFT}
}

func (v *Vocab) ReduceTransition() transition.Transition {
	return &transition.TypedTransition{T: TransitionType, V: v.REDUCE}
}

// Coarse maps a flat transition value to its three-way action index.
func (v *Vocab) Coarse(value int) int {
	switch {
	case value == v.SHIFT || v.IsGEN(value):
		return Shift
	case value == v.REDUCE:
		return Reduce
	case v.IsNT(value):
		return Open
	}
	panic(fmt.Sprintf("unknown transition value %d", value))
}

// WordID maps a raw token to a word index, falling back to its UNK
// signature for out-of-vocabulary tokens.
func (v *Vocab) WordID(token string) (int, error) {
	if id, exists := v.Words.IndexOf(token); exists {
		return id, nil
	}
	known := func(w string) bool {
		_, exists := v.Words.IndexOf(w)
		return exists
	}
	unk := util.Unkify(token, known)
	if id, exists := v.Words.IndexOf(unk); exists {
		return id, nil
	}
	return 0, fmt.Errorf("word %q (signature %s) not in vocabulary", token, unk)
}

// WordIDs maps a sentence to word indices.
func (v *Vocab) WordIDs(sent nlp.BasicSentence) ([]int, error) {
	ids := make([]int, len(sent))
	for i, token := range sent {
		id, err := v.WordID(string(token))
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

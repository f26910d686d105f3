package rnng

import (
	"fmt"

	"github.com/daandouwe/rnng/alg/transition"
)

// RNNG is the constituency transition system. It owns the vocabulary and
// the scoring model and fires SHIFT / REDUCE / NT(X) / GEN(w) transitions
// on configurations.
//
// Transition System:
//
//	NT(X)	(S, B, n) => (S|(X, B, n+1)
//	SHIFT	(S|(X|..., w|B, n) => (S|(X|...|w, B, n)	[discriminative]
//	GEN(w)	(S|(X|..., T, n) => (S|(X|...|w, T|w, n)	[generative]
//	REDUCE	(S|(X|c1..ck, B, n) => (S|X(c1..ck), B, n-1)
type RNNG struct {
	Vocab  *Vocab
	Model  Model
	oracle transition.Oracle
}

var _ transition.TransitionSystem = &RNNG{}

func NewRNNG(vocab *Vocab, m Model) *RNNG {
	if vocab.Generative {
		if _, ok := m.(GenerativeModel); !ok {
			panic("generative vocabulary requires a GenerativeModel")
		}
	}
	return &RNNG{Vocab: vocab, Model: m}
}

// Generative reports whether this system produces words with GEN.
func (r *RNNG) Generative() bool {
	return r.Vocab.Generative
}

// StartConfiguration initializes a configuration for a sentence (word
// indices; nil in generative mode).
func (r *RNNG) StartConfiguration(words []int) *Configuration {
	c := NewConfiguration(r.Vocab, r.Model)
	if r.Generative() {
		c.Init(nil)
	} else {
		c.Init(words)
	}
	return c
}

// Legal is the single legality predicate every decoder masks with (the
// max-open cap is MaxOpenNonTerminals):
//
//	SHIFT	input remains and a nonterminal is open
//	OPEN	input remains and fewer than the cap are open
//	REDUCE	last action was not OPEN, a nonterminal is open, and closing
//		would not seal the root while input remains
//
// In generative mode words are produced rather than consumed: GEN takes
// SHIFT's slot, OPEN is never blocked by input exhaustion, and REDUCE's
// premature-root-closure guard is vacuous.
func (r *RNNG) Legal(c *Configuration, value int) bool {
	if c.Terminal() {
		return false
	}
	v := r.Vocab
	open := c.Stack.OpenNonTerminals()
	bufferEmpty := c.BufferEmpty()
	switch {
	case value == v.SHIFT:
		return !r.Generative() && !bufferEmpty && open >= 1
	case value == v.REDUCE:
		if open < 1 || r.lastWasOpen(c) {
			return false
		}
		return open >= 2 || bufferEmpty
	case v.IsNT(value):
		if open >= MaxOpenNonTerminals {
			return false
		}
		return r.Generative() || !bufferEmpty
	case v.IsGEN(value):
		return open >= 1
	}
	return false
}

// LegalCoarse applies the predicate to one of the scorer's three action
// slots. Label and word sub-choices are always legal once the slot is.
func (r *RNNG) LegalCoarse(c *Configuration, coarse int) bool {
	v := r.Vocab
	switch coarse {
	case Shift:
		if r.Generative() {
			return r.Legal(c, v.GEN)
		}
		return r.Legal(c, v.SHIFT)
	case Reduce:
		return r.Legal(c, v.REDUCE)
	case Open:
		return r.Legal(c, v.NT)
	}
	panic(fmt.Sprintf("unknown coarse action %d", coarse))
}

// Transition fires a transition, returning the successor configuration.
// The input configuration is never mutated. Illegal transitions return an
// IllegalActionError; decoders mask beforehand, so hitting one is a bug.
func (r *RNNG) Transition(from transition.Configuration, t transition.Transition) (transition.Configuration, error) {
	c, ok := from.(*Configuration)
	if !ok {
		panic("Got wrong configuration type")
	}
	value := t.Value()
	if !r.Legal(c, value) {
		return nil, &IllegalActionError{
			Action: r.Vocab.Transitions.ValueOf(value),
			State:  c.String(),
		}
	}
	next := c.Copy().(*Configuration)
	v := r.Vocab
	switch {
	case value == v.SHIFT:
		word, vector, err := next.Buffer.Pop()
		if err != nil {
			return nil, err
		}
		next.Stack.Push(v.Words.ValueOf(word), word, vector)
	case value == v.REDUCE:
		if err := next.Stack.Reduce(r.Model); err != nil {
			return nil, err
		}
	case v.IsNT(value):
		label := v.NTLabel(value)
		next.Stack.Open(v.NonTerminals.ValueOf(label), label, r.Model.EmbedNonTerminal(label))
	case v.IsGEN(value):
		word := v.GENWord(value)
		vector := r.Model.EmbedWord(word)
		next.Stack.Push(v.Words.ValueOf(word), word, vector)
		next.Terminals.Push(word, vector)
	default:
		panic(fmt.Sprintf("Unknown transition %d", value))
	}
	next.History.Push(t, r.Model.EmbedAction(value))
	next.SetLastTransition(t)
	next.SetPrevious(c)
	return next, nil
}

// lastWasOpen reports whether the previous action opened a nonterminal,
// which forbids an immediate REDUCE (no empty constituents).
func (r *RNNG) lastWasOpen(c *Configuration) bool {
	last := c.GetLastTransition()
	return last != nil && r.Vocab.IsNT(last.Value())
}

func (r *RNNG) possibleTransitions(c *Configuration, transitions chan int) {
	v := r.Vocab
	if r.Legal(c, v.SHIFT) {
		transitions <- v.SHIFT
	}
	if r.Legal(c, v.REDUCE) {
		transitions <- v.REDUCE
	}
	if r.Legal(c, v.NT) {
		for label := 0; label < v.NonTerminals.Len(); label++ {
			transitions <- v.NT + label
		}
	}
	if r.Generative() && r.Legal(c, v.GEN) {
		for word := 0; word < v.Words.Len(); word++ {
			transitions <- v.GEN + word
		}
	}
	close(transitions)
}

func (r *RNNG) YieldTransitions(from transition.Configuration) chan int {
	c, ok := from.(*Configuration)
	if !ok {
		panic("Got wrong configuration type")
	}
	transitions := make(chan int)
	go r.possibleTransitions(c, transitions)
	return transitions
}

func (r *RNNG) GetTransitions(from transition.Configuration) []int {
	retval := make([]int, 0, 10)
	for t := range r.YieldTransitions(from) {
		retval = append(retval, t)
	}
	return retval
}

func (r *RNNG) TransitionTypes() []string {
	if r.Generative() {
		return []string{"NT-*", "GEN-*", "REDUCE"}
	}
	return []string{"NT-*", "SHIFT", "REDUCE"}
}

func (r *RNNG) Oracle() transition.Oracle {
	return r.oracle
}

func (r *RNNG) AddDefaultOracle() {
	r.oracle = &GoldOracle{vocab: r.Vocab}
}

func (r *RNNG) Name() string {
	if r.Generative() {
		return "Generative RNNG"
	}
	return "Discriminative RNNG"
}

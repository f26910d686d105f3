package rnng

import (
	"testing"

	nlp "github.com/daandouwe/rnng/nlp/types"
)

func TestReduceConsumesFrames(t *testing.T) {
	system, words := discSystem(t)
	v := system.Vocab
	s, _ := v.NonTerminals.IndexOf("S")
	conf := apply(t, system, system.StartConfiguration(words),
		v.NTTransition(s), v.ShiftTransition(), v.ShiftTransition(), v.ShiftTransition())
	stack := conf.(*Configuration).Stack
	if got := stack.Size(); got != 4 {
		t.Fatalf("stack has %d frames, want 4", got)
	}
	conf = apply(t, system, conf, v.ReduceTransition())
	stack = conf.(*Configuration).Stack
	if got := stack.Size(); got != 1 {
		t.Errorf("stack has %d frames after REDUCE, want 1", got)
	}
	if got := stack.OpenNonTerminals(); got != 0 {
		t.Errorf("stack has %d open nonterminals after REDUCE, want 0", got)
	}
}

// Forked configurations must evolve independently: growing an open
// constituent in one fork may not show up in the other.
func TestCopyForksOpenConstituents(t *testing.T) {
	system, words := discSystem(t)
	v := system.Vocab
	s, _ := v.NonTerminals.IndexOf("S")
	np, _ := v.NonTerminals.IndexOf("NP")
	vp, _ := v.NonTerminals.IndexOf("VP")
	shared := apply(t, system, system.StartConfiguration(words),
		v.NTTransition(s), v.NTTransition(np), v.ShiftTransition())
	// fork a: (NP The cat), fork b: (NP The) (VP cat ...)
	forkA := apply(t, system, shared,
		v.ShiftTransition(), v.ReduceTransition(),
		v.NTTransition(vp), v.ShiftTransition(), v.ReduceTransition(), v.ReduceTransition())
	forkB := apply(t, system, shared,
		v.ReduceTransition(),
		v.NTTransition(vp), v.ShiftTransition(), v.ShiftTransition(),
		v.ReduceTransition(), v.ReduceTransition())
	treeA, err := forkA.(*Configuration).Stack.Tree()
	if err != nil {
		t.Fatal(err)
	}
	treeB, err := forkB.(*Configuration).Stack.Tree()
	if err != nil {
		t.Fatal(err)
	}
	if got := nlp.Linearized(treeA, false); got != goldBracket {
		t.Errorf("fork a built %s, want %s", got, goldBracket)
	}
	wantB := "(S (NP The) (VP cat sleeps))"
	if got := nlp.Linearized(treeB, false); got != wantB {
		t.Errorf("fork b built %s, want %s", got, wantB)
	}
	// the shared prefix itself must be untouched
	sharedStack := shared.(*Configuration).Stack
	if got := sharedStack.Size(); got != 3 {
		t.Errorf("shared prefix stack has %d frames, want 3", got)
	}
	if got := sharedStack.OpenNonTerminals(); got != 2 {
		t.Errorf("shared prefix has %d open nonterminals, want 2", got)
	}
}

func TestPopEmptyStack(t *testing.T) {
	stack := NewStack()
	stack.Init()
	if _, err := stack.Pop(); err == nil {
		t.Fatal("pop from an empty stack succeeded")
	}
}

func TestLoneOpenRootIsNotFinished(t *testing.T) {
	system, words := discSystem(t)
	s, _ := system.Vocab.NonTerminals.IndexOf("S")
	conf := apply(t, system, system.StartConfiguration(words), system.Vocab.NTTransition(s))
	if conf.Terminal() {
		t.Error("a lone open root counts as finished")
	}
}

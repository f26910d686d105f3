package rnng

import (
	"fmt"
	"strings"

	"github.com/daandouwe/rnng/alg/transition"
	"github.com/daandouwe/rnng/util"
)

// Configuration is one parser state: stack + buffer (discriminative) or
// terminal (generative) + history, with the legality bookkeeping the
// transition system needs. It has value semantics through Copy: forked
// configurations share only immutable data (closed subtrees, vectors, the
// model itself).
type Configuration struct {
	Stack     *Stack
	Buffer    *Buffer
	Terminals *Terminal
	History   *History

	// Model and Vocab are shared by reference; both are immutable during
	// decoding.
	Model Model
	Vocab *Vocab

	Generative bool

	last transition.Transition
	prev *Configuration
}

var _ transition.Configuration = &Configuration{}

func NewConfiguration(vocab *Vocab, m Model) *Configuration {
	c := &Configuration{
		Stack:      NewStack(),
		History:    NewHistory(),
		Model:      m,
		Vocab:      vocab,
		Generative: vocab.Generative,
		last:       EmptyAction,
	}
	if c.Generative {
		c.Terminals = NewTerminal()
	} else {
		c.Buffer = NewBuffer()
	}
	return c
}

// Init resets the configuration for a new sentence. Discriminative
// configurations take the word indices ([]int); generative ones take nil
// (the sentence is produced by GEN actions).
func (c *Configuration) Init(abstract interface{}) {
	c.Stack.Init()
	c.History.Init(c.Model)
	c.last = EmptyAction
	c.prev = nil
	if c.Generative {
		if abstract != nil {
			panic("generative configuration initialized with an input sentence")
		}
		c.Terminals.Init()
		return
	}
	words, ok := abstract.([]int)
	if !ok {
		panic(fmt.Sprintf("expected []int word indices, got %T", abstract))
	}
	c.Buffer.Init(words, c.Model)
}

// Terminal reports whether the parse is complete: the whole derivation has
// been reduced into a single completed root frame.
func (c *Configuration) Terminal() bool {
	return c.Stack.IsFinished()
}

// BufferEmpty reports input exhaustion. A generative configuration has no
// pending input by construction.
func (c *Configuration) BufferEmpty() bool {
	if c.Generative {
		return true
	}
	return c.Buffer.Empty()
}

// Representation is the opaque state vector handed to the scorer:
// stack-top, buffer-top (terminal-top in generative mode) and history-top
// concatenated in that order.
func (c *Configuration) Representation() []float64 {
	stack := c.Stack.TopVector(c.Model)
	var input []float64
	if c.Generative {
		input = c.Terminals.TopVector(c.Model)
	} else {
		input = c.Buffer.TopVector(c.Model)
	}
	history := c.History.TopVector()
	state := make([]float64, 0, len(stack)+len(input)+len(history))
	state = append(state, stack...)
	state = append(state, input...)
	state = append(state, history...)
	return state
}

func (c *Configuration) Copy() transition.Configuration {
	copied := &Configuration{
		Stack:      c.Stack.Copy(),
		History:    c.History.Copy(),
		Model:      c.Model,
		Vocab:      c.Vocab,
		Generative: c.Generative,
		last:       c.last,
		prev:       c.prev,
	}
	if c.Generative {
		copied.Terminals = c.Terminals.Copy()
	} else {
		copied.Buffer = c.Buffer.Copy()
	}
	return copied
}

// Len is the number of transitions taken so far.
func (c *Configuration) Len() int {
	return c.History.Len()
}

func (c *Configuration) Previous() transition.Configuration {
	if c.prev == nil {
		return nil
	}
	return c.prev
}

func (c *Configuration) SetPrevious(prev transition.Configuration) {
	if prev == nil {
		c.prev = nil
		return
	}
	c.prev = prev.(*Configuration)
}

func (c *Configuration) GetSequence() transition.ConfigurationSequence {
	seq := make(transition.ConfigurationSequence, 0, c.Len()+1)
	for cur := c; cur != nil; cur = cur.prev {
		seq = append(seq, cur)
	}
	return seq
}

func (c *Configuration) SetLastTransition(t transition.Transition) {
	c.last = t
}

func (c *Configuration) GetLastTransition() transition.Transition {
	return c.last
}

func (c *Configuration) String() string {
	var sb strings.Builder
	sb.WriteString(c.Stack.String())
	sb.WriteString(" | ")
	if c.Generative {
		sb.WriteString(c.Terminals.String())
	} else {
		sb.WriteString(c.Buffer.String())
	}
	sb.WriteString(" | ")
	sb.WriteString(c.History.String())
	if c.last != nil && !c.last.Equal(EmptyAction) {
		fmt.Fprintf(&sb, " | last %s", c.Vocab.Transitions.ValueOf(c.last.Value()))
	}
	return sb.String()
}

// Equal compares configurations by their taken action sequences.
func (c *Configuration) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*Configuration)
	if !ok {
		return false
	}
	mine, theirs := c.History.Actions(), other.History.Actions()
	if len(mine) != len(theirs) {
		return false
	}
	for i, action := range mine {
		if !action.Equal(theirs[i]) {
			return false
		}
	}
	return true
}

// Actions returns the taken action sequence.
func (c *Configuration) Actions() []transition.Transition {
	return c.History.Actions()
}

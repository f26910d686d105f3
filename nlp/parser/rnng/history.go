package rnng

import (
	"fmt"

	"github.com/daandouwe/rnng/alg/transition"
)

// EmptyAction is the sentinel seeded into a fresh history, so Last is
// always defined. Its value collides with no flat transition.
var EmptyAction = transition.ConstTransition(-1)

// History is the append-only log of taken actions with their embeddings.
type History struct {
	actions []transition.Transition
	vectors [][]float64
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Init(m Model) {
	h.actions = []transition.Transition{EmptyAction}
	h.vectors = [][]float64{m.EmptyEmbedding()}
}

// Push appends a taken action.
func (h *History) Push(action transition.Transition, vector []float64) {
	h.actions = append(h.actions, action)
	h.vectors = append(h.vectors, vector)
}

// Last returns the most recent action; the sentinel for a fresh history.
func (h *History) Last() transition.Transition {
	return h.actions[len(h.actions)-1]
}

// Len is the number of actions taken, excluding the sentinel.
func (h *History) Len() int {
	return len(h.actions) - 1
}

// Actions returns the taken action sequence, excluding the sentinel.
func (h *History) Actions() []transition.Transition {
	return h.actions[1:]
}

func (h *History) TopVector() []float64 {
	return h.vectors[len(h.vectors)-1]
}

func (h *History) Copy() *History {
	// Append-only: copy the backing arrays so forks stay independent.
	actions := make([]transition.Transition, len(h.actions))
	copy(actions, h.actions)
	vectors := make([][]float64, len(h.vectors))
	copy(vectors, h.vectors)
	return &History{actions: actions, vectors: vectors}
}

func (h *History) String() string {
	return fmt.Sprintf("History (%d actions)", h.Len())
}

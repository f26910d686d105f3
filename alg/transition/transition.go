package transition

import (
	"bytes"
	"text/tabwriter"

	"github.com/daandouwe/rnng/util"
)

// Transition is one discrete parser action, identified by a type byte and
// an integer value into the transition enumeration.
type Transition interface {
	Type() byte
	Value() int
	Equal(other Transition) bool
}

type ConstTransition int

func (b ConstTransition) Type() byte {
	return '-'
}

func (b ConstTransition) Value() int {
	return int(b)
}

func (b ConstTransition) Equal(other Transition) bool {
	return b.Type() == other.Type() && b.Value() == other.Value()
}

type TypedTransition struct {
	T byte
	V int
}

func (t *TypedTransition) Type() byte {
	return t.T
}

func (t *TypedTransition) Value() int {
	return t.V
}

func (t *TypedTransition) Equal(other Transition) bool {
	return t.Type() == other.Type() && t.Value() == other.Value()
}

var _ Transition = ConstTransition(0)
var _ Transition = &TypedTransition{}

// Configuration is a parser state. Copy must yield a fully independent
// value: mutating the copy may not be observable through the original,
// which is what allows beam search to fork candidates freely.
type Configuration interface {
	Init(interface{})
	Terminal() bool

	Copy() Configuration

	Len() int
	Previous() Configuration
	SetPrevious(Configuration)
	GetSequence() ConfigurationSequence
	SetLastTransition(Transition)
	GetLastTransition() Transition
	String() string
	Equal(otherEq util.Equaler) bool
}

// ConfigurationSequence is a derivation trace, most recent configuration
// first; String renders it oldest first.
type ConfigurationSequence []Configuration

// TransitionSystem fires transitions on configurations and enumerates the
// legal moves out of a configuration. Transition never mutates from; it
// returns a new configuration or an error for an illegal action.
type TransitionSystem interface {
	Transition(from Configuration, transition Transition) (Configuration, error)

	TransitionTypes() []string

	YieldTransitions(conf Configuration) chan int
	GetTransitions(conf Configuration) []int

	Oracle() Oracle
	AddDefaultOracle()

	Name() string
}

type Decision interface {
	Transition(Configuration) (Transition, error)
}

// Oracle produces the gold transition for a configuration, given a gold
// structure set beforehand.
type Oracle interface {
	Decision
	SetGold(interface{}) error
	Name() string
}

func (seq ConfigurationSequence) String() string {
	var buf bytes.Buffer
	w := new(tabwriter.Writer)
	w.Init(&buf, 0, 8, 0, '\t', 0)
	seqLength := len(seq)
	for i := range seq {
		conf := seq[seqLength-i-1]
		w.Write([]byte(conf.String()))
		if i < seqLength-1 {
			w.Write([]byte{'\n'})
		}
	}
	w.Flush()
	return buf.String()
}

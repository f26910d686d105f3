package rnng

import (
	"fmt"

	"github.com/daandouwe/rnng/alg/transition"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

// ExtractActions linearizes a gold tree into its unique transition
// sequence: NT on entering a constituent, SHIFT (GEN(w) in generative
// mode) per leaf, REDUCE on leaving. Unknown labels and, for generative
// vocabularies, unmappable words yield an error.
func ExtractActions(tree nlp.TreeNode, vocab *Vocab) ([]transition.Transition, error) {
	var actions []transition.Transition
	var walk func(node nlp.TreeNode) error
	position := 0
	walk = func(node nlp.TreeNode) error {
		switch n := node.(type) {
		case *nlp.LeafNode:
			if vocab.Generative {
				word, err := vocab.WordID(n.Word)
				if err != nil {
					return &MalformedOracleError{Index: position, Reason: err.Error()}
				}
				actions = append(actions, vocab.GENTransition(word))
			} else {
				actions = append(actions, vocab.ShiftTransition())
			}
			position++
		case *nlp.InternalNode:
			label, exists := vocab.NonTerminals.IndexOf(n.Label)
			if !exists {
				return &MalformedOracleError{
					Index:  len(actions),
					Reason: fmt.Sprintf("unknown nonterminal %q", n.Label),
				}
			}
			actions = append(actions, vocab.NTTransition(label))
			if len(n.Children) == 0 {
				return &MalformedOracleError{
					Index:  len(actions),
					Reason: fmt.Sprintf("empty constituent %q", n.Label),
				}
			}
			for _, child := range n.Children {
				if err := walk(child); err != nil {
					return err
				}
			}
			actions = append(actions, vocab.ReduceTransition())
		default:
			panic(fmt.Sprintf("unknown tree node type %T", node))
		}
		return nil
	}
	if err := walk(tree); err != nil {
		return nil, err
	}
	return actions, nil
}

// GoldOracle replays a gold transition sequence: at every configuration it
// returns the next gold action. Feed it either a tree or a ready sequence
// through SetGold.
type GoldOracle struct {
	vocab   *Vocab
	actions []transition.Transition
}

var _ transition.Oracle = &GoldOracle{}

func (o *GoldOracle) SetGold(g interface{}) error {
	switch gold := g.(type) {
	case nlp.TreeNode:
		actions, err := ExtractActions(gold, o.vocab)
		if err != nil {
			return err
		}
		o.actions = actions
	case []transition.Transition:
		o.actions = gold
	default:
		return fmt.Errorf("gold must be a tree or a transition sequence, got %T", g)
	}
	return nil
}

func (o *GoldOracle) Transition(from transition.Configuration) (transition.Transition, error) {
	c, ok := from.(*Configuration)
	if !ok {
		panic("Got wrong configuration type")
	}
	taken := c.Len()
	if taken >= len(o.actions) {
		return nil, &MalformedOracleError{
			Index:  taken,
			Reason: fmt.Sprintf("gold sequence exhausted after %d actions", len(o.actions)),
		}
	}
	return o.actions[taken], nil
}

func (o *GoldOracle) Name() string {
	return "RNNG gold derivation oracle"
}

// Replay drives a configuration through a full transition sequence,
// returning the final configuration. The sequence must be legal at every
// step; replaying a gold derivation over its own sentence always is.
func (r *RNNG) Replay(words []int, actions []transition.Transition) (*Configuration, error) {
	var conf transition.Configuration = r.StartConfiguration(words)
	for i, action := range actions {
		next, err := r.Transition(conf, action)
		if err != nil {
			return nil, fmt.Errorf("replay failed at action %d (%s): %w",
				i, r.Vocab.Transitions.ValueOf(action.Value()), err)
		}
		conf = next
	}
	c := conf.(*Configuration)
	if !c.Terminal() {
		return nil, &MalformedOracleError{
			Index:  len(actions),
			Reason: "sequence ended before the parse finished",
		}
	}
	return c, nil
}

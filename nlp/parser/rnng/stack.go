package rnng

import (
	"fmt"
	"strings"

	nlp "github.com/daandouwe/rnng/nlp/types"
)

// Frame is one stack entry: either an open-nonterminal marker or a
// completed subtree (a shifted leaf or a reduced constituent), with the
// vector representation attached. Vectors are immutable once created and
// may therefore be shared between forked configurations.
type Frame struct {
	ID     int // word or nonterminal enumeration index
	Vector []float64
	Node   nlp.TreeNode
	Open   bool
}

// Stack owns the frame sequence and the open-nonterminal count, and
// performs the REDUCE tree surgery.
type Stack struct {
	frames []Frame
	open   int
}

func NewStack() *Stack {
	return &Stack{frames: make([]Frame, 0, 16)}
}

func (s *Stack) Init() {
	s.frames = s.frames[:0]
	s.open = 0
}

func (s *Stack) Size() int {
	return len(s.frames)
}

// OpenNonTerminals is the number of open-nonterminal markers on the stack.
func (s *Stack) OpenNonTerminals() int {
	return s.open
}

func (s *Stack) Top() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// TopVector is the representation of the topmost frame, or the model's
// sentinel vector for an empty stack.
func (s *Stack) TopVector(m Model) []float64 {
	if len(s.frames) == 0 {
		return m.EmptyEmbedding()
	}
	return s.frames[len(s.frames)-1].Vector
}

// Open pushes an open-nonterminal marker and attaches a fresh constituent
// node under the rightmost open ancestor (or as root when there is none).
func (s *Stack) Open(label string, id int, vector []float64) {
	node := &nlp.InternalNode{Label: label}
	s.attach(node)
	s.frames = append(s.frames, Frame{ID: id, Vector: vector, Node: node, Open: true})
	s.open++
}

// Push pushes a completed leaf frame for a shifted or generated word.
func (s *Stack) Push(word string, id int, vector []float64) {
	node := &nlp.LeafNode{Word: word}
	s.attach(node)
	s.frames = append(s.frames, Frame{ID: id, Vector: vector, Node: node})
}

func (s *Stack) attach(node nlp.TreeNode) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Open {
			s.frames[i].Node.(*nlp.InternalNode).AddChild(node)
			return
		}
	}
	// No open ancestor: node becomes the root, held only by its frame.
}

// Pop removes and returns the top frame.
func (s *Stack) Pop() (Frame, error) {
	if len(s.frames) == 0 {
		return Frame{}, &EmptyStructureError{Structure: "stack"}
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

// Reduce pops completed frames down to and including the nearest open
// marker, composes the marker's label vector with the ordered child
// vectors, freezes the constituent and pushes the one completed frame that
// replaces them. Consumes exactly len(children)+1 frames.
func (s *Stack) Reduce(m Model) error {
	var children []Frame
	for {
		frame, err := s.Pop()
		if err != nil {
			return err
		}
		if frame.Open {
			// children were collected top-down; restore left-to-right order
			for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
				children[i], children[j] = children[j], children[i]
			}
			childVectors := make([][]float64, len(children))
			for i, child := range children {
				childVectors[i] = child.Vector
			}
			composed := m.Compose(frame.Vector, childVectors)
			node := frame.Node.(*nlp.InternalNode)
			node.Close()
			s.frames = append(s.frames, Frame{ID: frame.ID, Vector: composed, Node: node})
			s.open--
			return nil
		}
		children = append(children, frame)
	}
}

// IsFinished reports termination: exactly one frame remains and it is not
// an open marker. A lone still-open root is not a finished parse.
func (s *Stack) IsFinished() bool {
	return len(s.frames) == 1 && !s.frames[0].Open
}

// Tree returns the completed parse.
func (s *Stack) Tree() (nlp.TreeNode, error) {
	if !s.IsFinished() {
		return nil, fmt.Errorf("no finished tree on the stack (%d frames, %d open)", len(s.frames), s.open)
	}
	return s.frames[0].Node, nil
}

// Copy forks the stack without aliasing mutable state: frames are copied,
// still-open constituent nodes are cloned along the open spine and rewired,
// while closed subtrees (frozen, never mutated again) stay shared.
func (s *Stack) Copy() *Stack {
	frames := make([]Frame, len(s.frames))
	copy(frames, s.frames)
	if s.open == 0 {
		return &Stack{frames: frames, open: 0}
	}
	clones := make(map[*nlp.InternalNode]*nlp.InternalNode, s.open)
	for i := range frames {
		if frames[i].Open {
			original := frames[i].Node.(*nlp.InternalNode)
			clone := original.CloneOpen()
			clones[original] = clone
			frames[i].Node = clone
		}
	}
	for _, clone := range clones {
		for j, child := range clone.Children {
			if internal, ok := child.(*nlp.InternalNode); ok {
				if childClone, exists := clones[internal]; exists {
					clone.Children[j] = childClone
				}
			}
		}
	}
	return &Stack{frames: frames, open: s.open}
}

func (s *Stack) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Stack (%d open):", s.open)
	for _, frame := range s.frames {
		sb.WriteByte(' ')
		if frame.Open {
			sb.WriteString("NT(")
			sb.WriteString(frame.Node.(*nlp.InternalNode).Label)
			sb.WriteByte(')')
		} else {
			sb.WriteString(nlp.Linearized(frame.Node, false))
		}
	}
	return sb.String()
}

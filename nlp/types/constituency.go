package types

import (
	"strings"

	"github.com/daandouwe/rnng/util"
)

// DummyTag is the preterminal placeholder used when linearizing with tags
// a tree that was built without part-of-speech information.
const DummyTag = "XX"

// TreeNode is a node of a constituency tree: either a leaf token or a
// labeled internal node with ordered children.
type TreeNode interface {
	util.Equaler
	Leaves() []string
	// Linearize writes the bracketed form of the node. With tags, every
	// leaf is wrapped in a (XX leaf) preterminal placeholder.
	Linearize(sb *strings.Builder, withTags bool)
}

// LeafNode is a terminal token. Immutable once created.
type LeafNode struct {
	Word string
}

var _ TreeNode = &LeafNode{}

func (l *LeafNode) Leaves() []string {
	return []string{l.Word}
}

func (l *LeafNode) Linearize(sb *strings.Builder, withTags bool) {
	if withTags {
		sb.WriteByte('(')
		sb.WriteString(DummyTag)
		sb.WriteByte(' ')
		sb.WriteString(l.Word)
		sb.WriteByte(')')
	} else {
		sb.WriteString(l.Word)
	}
}

func (l *LeafNode) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*LeafNode)
	return ok && l.Word == other.Word
}

// InternalNode is a labeled constituent. It is mutable while its
// nonterminal is still open on the stack and frozen once reduced; closed
// nodes may safely be shared across forked parser configurations.
type InternalNode struct {
	Label    string
	Children []TreeNode
	closed   bool
}

var _ TreeNode = &InternalNode{}

func (n *InternalNode) Leaves() []string {
	var leaves []string
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}

func (n *InternalNode) Linearize(sb *strings.Builder, withTags bool) {
	sb.WriteByte('(')
	sb.WriteString(n.Label)
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.Linearize(sb, withTags)
	}
	sb.WriteByte(')')
}

// AddChild attaches child as the rightmost child. Only legal while the
// constituent is still open.
func (n *InternalNode) AddChild(child TreeNode) {
	if n.closed {
		panic("Cannot attach a child to a closed constituent")
	}
	n.Children = append(n.Children, child)
}

// Close freezes the node; no further children may be attached.
func (n *InternalNode) Close() {
	n.closed = true
}

func (n *InternalNode) Closed() bool {
	return n.closed
}

// CloneOpen returns a copy of a still-open node with its own children
// slice. Child pointers are shared; callers forking a configuration rewire
// the ones that are themselves open.
func (n *InternalNode) CloneOpen() *InternalNode {
	if n.closed {
		panic("CloneOpen on a closed constituent")
	}
	children := make([]TreeNode, len(n.Children))
	copy(children, n.Children)
	return &InternalNode{Label: n.Label, Children: children}
}

func (n *InternalNode) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*InternalNode)
	if !ok || n.Label != other.Label || len(n.Children) != len(other.Children) {
		return false
	}
	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Linearized is the bracketed string of any tree node.
func Linearized(node TreeNode, withTags bool) string {
	var sb strings.Builder
	node.Linearize(&sb, withTags)
	return sb.String()
}

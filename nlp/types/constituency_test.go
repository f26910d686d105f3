package types

import "testing"

func buildTree() *InternalNode {
	np := &InternalNode{Label: "NP"}
	np.AddChild(&LeafNode{Word: "The"})
	np.AddChild(&LeafNode{Word: "cat"})
	np.Close()
	vp := &InternalNode{Label: "VP"}
	vp.AddChild(&LeafNode{Word: "sleeps"})
	vp.Close()
	s := &InternalNode{Label: "S"}
	s.AddChild(np)
	s.AddChild(vp)
	s.Close()
	return s
}

func TestLinearize(t *testing.T) {
	tree := buildTree()
	if got, want := Linearized(tree, false), "(S (NP The cat) (VP sleeps))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Linearized(tree, true), "(S (NP (XX The) (XX cat)) (VP (XX sleeps)))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLeaves(t *testing.T) {
	leaves := buildTree().Leaves()
	want := []string{"The", "cat", "sleeps"}
	if len(leaves) != len(want) {
		t.Fatalf("got %d leaves, want %d", len(leaves), len(want))
	}
	for i, leaf := range leaves {
		if leaf != want[i] {
			t.Errorf("leaf %d is %q, want %q", i, leaf, want[i])
		}
	}
}

func TestEqual(t *testing.T) {
	if !buildTree().Equal(buildTree()) {
		t.Error("identical trees compare unequal")
	}
	other := &InternalNode{Label: "S"}
	other.AddChild(&LeafNode{Word: "The"})
	other.Close()
	if buildTree().Equal(other) {
		t.Error("different trees compare equal")
	}
}

func TestClosedNodeRejectsChildren(t *testing.T) {
	node := &InternalNode{Label: "NP"}
	node.AddChild(&LeafNode{Word: "cat"})
	node.Close()
	defer func() {
		if recover() == nil {
			t.Error("attaching to a closed constituent did not panic")
		}
	}()
	node.AddChild(&LeafNode{Word: "dog"})
}

func TestCloneOpenIsIndependent(t *testing.T) {
	node := &InternalNode{Label: "NP"}
	node.AddChild(&LeafNode{Word: "The"})
	clone := node.CloneOpen()
	clone.AddChild(&LeafNode{Word: "cat"})
	if len(node.Children) != 1 {
		t.Errorf("growing the clone changed the original (%d children)", len(node.Children))
	}
	if len(clone.Children) != 2 {
		t.Errorf("clone has %d children, want 2", len(clone.Children))
	}
}

func TestSentenceOf(t *testing.T) {
	sent := SentenceOf("The  cat\tsleeps")
	if len(sent) != 3 {
		t.Fatalf("got %d tokens, want 3", len(sent))
	}
	if sent.String() != "The cat sleeps" {
		t.Errorf("got %q", sent.String())
	}
}

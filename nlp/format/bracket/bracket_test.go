package bracket

import (
	"strings"
	"testing"

	"github.com/daandouwe/rnng/nlp/types"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"(S (NP The cat) (VP sleeps))",
		"(S word)",
		"(TOP (S (NP a b c) (VP d (PP e f))))",
	}
	for _, input := range inputs {
		tree, err := Parse(input)
		if err != nil {
			t.Fatalf("parsing %q: %v", input, err)
		}
		if got := types.Linearized(tree, false); got != input {
			t.Errorf("round trip gave %q, want %q", got, input)
		}
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"(S (NP The cat) (VP sleeps)",
		"(S (NP The cat)) extra",
		"(S ())",
		"((S word))",
		")",
	}
	for _, input := range inputs {
		if _, err := Parse(input); err == nil {
			t.Errorf("parsing %q succeeded", input)
		}
	}
}

func TestStripPreterminals(t *testing.T) {
	tree, err := Parse("(S (NP (DT The) (NN cat)) (VP (VBZ sleeps)))")
	if err != nil {
		t.Fatal(err)
	}
	stripped := StripPreterminals(tree)
	want := "(S (NP The cat) (VP sleeps))"
	if got := types.Linearized(stripped, false); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadLimit(t *testing.T) {
	input := "(S a)\n\n(S b)\n(S c)\n"
	trees, err := Read(strings.NewReader(input), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 2 {
		t.Fatalf("read %d trees, want 2", len(trees))
	}
	all, err := Read(strings.NewReader(input), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("read %d trees, want 3", len(all))
	}
}

func TestWriteWithTags(t *testing.T) {
	tree, err := Parse("(S (NP The) (VP sleeps))")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := Write(&sb, []types.TreeNode{tree}, true); err != nil {
		t.Fatal(err)
	}
	want := "(S (NP (XX The)) (VP (XX sleeps)))\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

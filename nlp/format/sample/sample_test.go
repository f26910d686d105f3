package sample

import (
	"strings"
	"testing"
)

func TestReadGroupsBySentence(t *testing.T) {
	input := `0 ||| -12.5 ||| (S (NP The cat) (VP sleeps))
0 ||| -14.25 ||| (S (NP The) (VP cat sleeps))
1 ||| -3.5 ||| (S word)
`
	groups, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 2 || len(groups[1]) != 1 {
		t.Fatalf("got group sizes %d/%d, want 2/1", len(groups[0]), len(groups[1]))
	}
	if groups[0][1].LogProb != -14.25 {
		t.Errorf("got log-probability %v, want -14.25", groups[0][1].LogProb)
	}
	if groups[1][0].Tree != "(S word)" {
		t.Errorf("got tree %q", groups[1][0].Tree)
	}
}

func TestReadRejectsOutOfOrderIndices(t *testing.T) {
	inputs := []string{
		"1 ||| -1.0 ||| (S a)\n",
		"0 ||| -1.0 ||| (S a)\n2 ||| -1.0 ||| (S b)\n",
		"0 ||| -1.0 ||| (S a)\n1 ||| -1.0 ||| (S b)\n0 ||| -1.0 ||| (S c)\n",
	}
	for _, input := range inputs {
		if _, err := Read(strings.NewReader(input)); err == nil {
			t.Errorf("reading %q succeeded", input)
		}
	}
}

func TestReadRejectsMalformedLines(t *testing.T) {
	inputs := []string{
		"0 ||| -1.0\n",
		"zero ||| -1.0 ||| (S a)\n",
		"0 ||| bad ||| (S a)\n",
	}
	for _, input := range inputs {
		if _, err := Read(strings.NewReader(input)); err == nil {
			t.Errorf("reading %q succeeded", input)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	groups := [][]Sample{
		{{Index: 0, LogProb: -1.5, Tree: "(S a)"}, {Index: 0, LogProb: -2, Tree: "(S b)"}},
		{{Index: 1, LogProb: -0.25, Tree: "(S c d)"}},
	}
	var sb strings.Builder
	if err := Write(&sb, groups); err != nil {
		t.Fatal(err)
	}
	read, err := Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != len(groups) {
		t.Fatalf("got %d groups, want %d", len(read), len(groups))
	}
	for i := range groups {
		for j := range groups[i] {
			if read[i][j] != groups[i][j] {
				t.Errorf("sample %d/%d: got %+v, want %+v", i, j, read[i][j], groups[i][j])
			}
		}
	}
}

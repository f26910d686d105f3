package rnng

import (
	"errors"
	"math"
	"testing"

	"github.com/daandouwe/rnng/nlp/format/bracket"
	"github.com/daandouwe/rnng/nlp/format/sample"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

func genSystem(t *testing.T) *RNNG {
	t.Helper()
	vocab := testVocab(true)
	return NewRNNG(vocab, NewUniformModel(vocab))
}

func testProposals() []sample.Sample {
	return []sample.Sample{
		{Index: 0, LogProb: -2.0, Tree: "(S (NP The cat) (VP sleeps))"},
		{Index: 0, LogProb: -2.0, Tree: "(S (NP The cat) (VP sleeps))"},
		{Index: 0, LogProb: -3.5, Tree: "(S (NP The) (VP cat sleeps))"},
	}
}

func TestScoreSamples(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	weighted, err := decoder.ScoreSamples(testSentence, testProposals())
	if err != nil {
		t.Fatal(err)
	}
	if len(weighted) != 3 {
		t.Fatalf("scored %d samples, want 3", len(weighted))
	}
	for i, w := range weighted {
		if w.Joint > 0 || math.IsInf(w.Joint, -1) || math.IsNaN(w.Joint) {
			t.Errorf("sample %d has joint log-probability %v", i, w.Joint)
		}
	}
	// scoring is deterministic, so the duplicated tree scores identically
	if weighted[0].Joint != weighted[1].Joint {
		t.Errorf("identical samples scored differently: %v vs %v", weighted[0].Joint, weighted[1].Joint)
	}
}

func TestMapTreeDeduplicates(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	weighted := []WeightedSample{
		{Tree: mustParse(t, "(S (NP The) (VP cat sleeps))"), Proposal: -1, Joint: -8},
		{Tree: mustParse(t, "(S (NP The) (VP cat sleeps))"), Proposal: -1, Joint: -8},
		{Tree: mustParse(t, "(S (NP The cat) (VP sleeps))"), Proposal: -4, Joint: -6},
	}
	best := decoder.MapTree(weighted)
	if got := nlp.Linearized(best.Tree, false); got != goldBracket {
		t.Errorf("MAP tree %s, want %s", got, goldBracket)
	}
	if best.LogProb != -6 {
		t.Errorf("MAP joint %v, want -6", best.LogProb)
	}
}

func TestLogProbEstimate(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	// two identical weights w: logsumexp(w, w) - log 2 = w
	weighted := []WeightedSample{
		{Proposal: -2, Joint: -5},
		{Proposal: -2, Joint: -5},
	}
	if got := decoder.LogProb(weighted); math.Abs(got-(-3)) > 1e-9 {
		t.Errorf("log p(x) estimate %v, want -3", got)
	}
}

func TestPerplexity(t *testing.T) {
	if got := Perplexity(-math.Log(4)*2, 2); math.Abs(got-4) > 1e-9 {
		t.Errorf("perplexity %v, want 4", got)
	}
}

func TestRescoreRestoresOriginalTokens(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	// proposal leaves carry UNK signatures; the rescored tree must carry
	// the sentence's actual tokens
	proposals := []sample.Sample{
		{Index: 0, LogProb: -2.0, Tree: "(S (NP UNK-c UNK) (VP UNK-s))"},
	}
	best, logProb, err := decoder.Rescore(testSentence, proposals)
	if err != nil {
		t.Fatal(err)
	}
	if got := nlp.Linearized(best.Tree, false); got != goldBracket {
		t.Errorf("rescored tree %s, want %s", got, goldBracket)
	}
	if math.IsNaN(logProb) || math.IsInf(logProb, 0) {
		t.Errorf("log p(x) estimate %v", logProb)
	}
}

func TestRescoreStripsTaggedProposals(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	// tagged proposal: XX wrappers go, the unary (VP sleeps) stays
	proposals := []sample.Sample{
		{Index: 0, LogProb: -2.0, Tree: "(S (NP (XX The) (XX cat)) (VP (XX sleeps)))"},
	}
	best, _, err := decoder.Rescore(testSentence, proposals)
	if err != nil {
		t.Fatal(err)
	}
	if got := nlp.Linearized(best.Tree, false); got != goldBracket {
		t.Errorf("rescored tree %s, want %s", got, goldBracket)
	}
}

func TestScoreSamplesRejectsEmpty(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	if _, err := decoder.ScoreSamples(testSentence, nil); err == nil {
		t.Fatal("scoring zero samples succeeded")
	}
}

func TestScoreSamplesRejectsShortGroup(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 5)
	_, err := decoder.ScoreSamples(testSentence, testProposals())
	var mismatch *SampleCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("scoring 3 samples with 5 expected gave %v", err)
	}
	if mismatch.Want != 5 || mismatch.Got != 3 {
		t.Errorf("mismatch reports want %d got %d, expected want 5 got 3", mismatch.Want, mismatch.Got)
	}
}

func TestScoreSamplesAcceptsExactGroup(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 3)
	weighted, err := decoder.ScoreSamples(testSentence, testProposals())
	if err != nil {
		t.Fatal(err)
	}
	if len(weighted) != 3 {
		t.Fatalf("scored %d samples, want 3", len(weighted))
	}
}

func TestScoreSamplesLeafCountMismatch(t *testing.T) {
	decoder := NewGenerativeImportanceDecoder(genSystem(t), 0)
	proposals := []sample.Sample{
		{Index: 0, LogProb: -1, Tree: "(S (NP The cat))"},
	}
	if _, err := decoder.ScoreSamples(testSentence, proposals); err == nil {
		t.Fatal("scoring a tree with too few leaves succeeded")
	}
}

func mustParse(t *testing.T, s string) nlp.TreeNode {
	t.Helper()
	tree, err := bracket.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

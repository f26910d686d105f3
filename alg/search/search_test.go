package search

import (
	"math"
	"testing"
)

// pathCandidate walks a fixed-depth binary tree: every expansion forks
// into a cheap and an expensive continuation.
type pathCandidate struct {
	depth int
	score float64
}

func (p *pathCandidate) Copy() Candidate {
	return &pathCandidate{depth: p.depth, score: p.score}
}

func (p *pathCandidate) Score() float64 {
	return p.score
}

func (p *pathCandidate) Len() int {
	return p.depth
}

func (p *pathCandidate) Terminal() bool {
	return p.depth >= 3
}

type pathProblem struct{}

func (pathProblem) StartItem(p Problem) ([]Candidate, error) {
	return []Candidate{&pathCandidate{}}, nil
}

func (pathProblem) Expand(c Candidate, p Problem, width int) ([]Candidate, error) {
	parent := c.(*pathCandidate)
	return []Candidate{
		&pathCandidate{depth: parent.depth + 1, score: parent.score - 1},
		&pathCandidate{depth: parent.depth + 1, score: parent.score - 2},
	}, nil
}

func (pathProblem) Name() string {
	return "binary path search"
}

func TestSearchFindsBestPath(t *testing.T) {
	finished, err := Search(pathProblem{}, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(finished) == 0 {
		t.Fatal("no finished candidates")
	}
	if got := finished[0].Score(); got != -3 {
		t.Errorf("best score %v, want -3", got)
	}
	for i := 1; i < len(finished); i++ {
		if finished[i].Score() > finished[i-1].Score() {
			t.Errorf("finished candidates not sorted at %d", i)
		}
	}
}

func TestSearchRespectsWidth(t *testing.T) {
	finished, err := Search(pathProblem{}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(finished) != 2 {
		t.Errorf("got %d finished candidates, want 2", len(finished))
	}
}

func TestSearchWidthOneIsGreedy(t *testing.T) {
	finished, err := Search(pathProblem{}, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(finished) != 1 {
		t.Fatalf("got %d finished candidates, want 1", len(finished))
	}
	if got := finished[0].Score(); got != -3 {
		t.Errorf("greedy score %v, want -3", got)
	}
}

func TestSearchRejectsBadWidth(t *testing.T) {
	if _, err := Search(pathProblem{}, nil, 0); err == nil {
		t.Fatal("width 0 accepted")
	}
}

// endless never terminates; the round guard must trip.
type endless struct{}

func (endless) StartItem(p Problem) ([]Candidate, error) {
	return []Candidate{&pathCandidate{depth: math.MinInt32}}, nil
}

func (endless) Expand(c Candidate, p Problem, width int) ([]Candidate, error) {
	return []Candidate{&pathCandidate{depth: math.MinInt32}}, nil
}

func (endless) Name() string {
	return "endless search"
}

func TestSearchBoundsRounds(t *testing.T) {
	if _, err := Search(endless{}, nil, 1); err == nil {
		t.Fatal("endless search returned without error")
	}
}

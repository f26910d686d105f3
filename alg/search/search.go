package search

import (
	"fmt"
	"log"
	"sort"
)

const (
	// MaxRounds bounds the number of expansion rounds; a well-formed
	// transition sequence over a sentence is far shorter.
	MaxRounds = 800
)

var AllOut bool = false

type Problem interface{}

// Candidate is one beam entry: an independent parser state with a
// cumulative log-probability.
type Candidate interface {
	Copy() Candidate
	Score() float64
	Len() int
	Terminal() bool
}

// Interface is implemented by a concrete beam decoder. Expand returns the
// scored continuations of a candidate; it must not mutate the candidate,
// so that siblings of the same parent stay independent.
type Interface interface {
	StartItem(p Problem) ([]Candidate, error)
	Expand(c Candidate, p Problem, width int) ([]Candidate, error)
	Name() string
}

// Search runs synchronous-levels beam search: every round expands all open
// candidates, keeps the global best width continuations by cumulative
// log-probability, and migrates terminal candidates out of the frontier.
// It returns all finished candidates, best first. Ties keep enumeration
// order. This is not best-first search; a derivation with a low-probability
// prefix can be discarded even if it would have won overall.
func Search(b Interface, problem Problem, width int) ([]Candidate, error) {
	if width < 1 {
		return nil, fmt.Errorf("search: beam width must be positive, got %d", width)
	}
	frontier, err := b.StartItem(problem)
	if err != nil {
		return nil, err
	}
	var finished []Candidate
	for round := 0; len(frontier) > 0; round++ {
		if round > MaxRounds {
			return nil, fmt.Errorf("search: no terminal candidate within %d rounds", MaxRounds)
		}
		expanded := make([]Candidate, 0, len(frontier)*width)
		for _, candidate := range frontier {
			children, err := b.Expand(candidate, problem, width)
			if err != nil {
				return nil, err
			}
			expanded = append(expanded, children...)
		}
		sortByScore(expanded)
		if len(expanded) > width {
			expanded = expanded[:width]
		}
		frontier = frontier[:0]
		for _, candidate := range expanded {
			if candidate.Terminal() {
				finished = append(finished, candidate)
			} else {
				frontier = append(frontier, candidate)
			}
		}
		if AllOut {
			log.Println("Round", round, "open", len(frontier), "finished", len(finished))
		}
	}
	sortByScore(finished)
	return finished, nil
}

func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})
}

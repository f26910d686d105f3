package types

import (
	"strings"

	"github.com/daandouwe/rnng/util"
)

type Token string

// A Sentence is the basic unit of processing: an ordered sequence of tokens.
type Sentence interface {
	util.Equaler
	Tokens() []string
}

type BasicSentence []Token

var _ Sentence = BasicSentence{}

func (b BasicSentence) Tokens() []string {
	retval := make([]string, len(b))
	for i, token := range b {
		retval[i] = string(token)
	}
	return retval
}

func (b BasicSentence) String() string {
	return strings.Join(b.Tokens(), " ")
}

func (b BasicSentence) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(BasicSentence)
	if !ok {
		return false
	}
	if len(b) != len(other) {
		return false
	}
	for i, token := range b {
		if token != other[i] {
			return false
		}
	}
	return true
}

// SentenceOf splits a whitespace-tokenized line into a sentence.
func SentenceOf(line string) BasicSentence {
	fields := strings.Fields(line)
	sent := make(BasicSentence, len(fields))
	for i, field := range fields {
		sent[i] = Token(field)
	}
	return sent
}

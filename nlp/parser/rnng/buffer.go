package rnng

import (
	"fmt"
)

// Buffer holds the unconsumed input tokens in reverse: the top of the
// buffer is the next token to shift. Embeddings are computed once at
// initialization; if the model encodes the buffer contextually, those
// encodings are kept alongside and reported as tops. Once the last real
// token is popped the buffer answers top-vector queries with the model's
// sentinel vector, so the state representation stays well-defined.
//
// The buffer only ever shrinks after Init, so forked configurations can
// share the backing arrays.
type Buffer struct {
	words     []int
	vectors   [][]float64
	encodings [][]float64 // nil unless the model implements BufferEncoder
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Init loads the sentence (given as word indices) in reverse and embeds
// every token.
func (b *Buffer) Init(words []int, m Model) {
	b.words = make([]int, len(words))
	b.vectors = make([][]float64, len(words))
	for i, word := range words {
		j := len(words) - 1 - i
		b.words[j] = word
		b.vectors[j] = m.EmbedWord(word)
	}
	b.encodings = nil
	if encoder, ok := m.(BufferEncoder); ok {
		b.encodings = encoder.EncodeBuffer(b.vectors)
	}
}

func (b *Buffer) Len() int {
	return len(b.words)
}

func (b *Buffer) Empty() bool {
	return len(b.words) == 0
}

// Pop removes and returns the next token with its embedding.
func (b *Buffer) Pop() (int, []float64, error) {
	if b.Empty() {
		return 0, nil, &EmptyStructureError{Structure: "buffer"}
	}
	n := len(b.words) - 1
	word, vector := b.words[n], b.vectors[n]
	b.words = b.words[:n]
	b.vectors = b.vectors[:n]
	if b.encodings != nil {
		b.encodings = b.encodings[:n]
	}
	return word, vector, nil
}

// TopVector is the representation of the next token to shift: the
// contextual encoding when available, the plain embedding otherwise, and
// the sentinel vector once the buffer is exhausted.
func (b *Buffer) TopVector(m Model) []float64 {
	if b.Empty() {
		return m.EmptyEmbedding()
	}
	if b.encodings != nil {
		return b.encodings[len(b.encodings)-1]
	}
	return b.vectors[len(b.vectors)-1]
}

func (b *Buffer) Copy() *Buffer {
	// Pops only reslice; contents are never rewritten, so sharing the
	// backing arrays across forks is safe.
	return &Buffer{words: b.words, vectors: b.vectors, encodings: b.encodings}
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer (%d words)", len(b.words))
}

// Terminal replaces the buffer in generative mode: words are produced, not
// consumed, and the structure is append-only.
type Terminal struct {
	words   []int
	vectors [][]float64
}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Init() {
	t.words = nil
	t.vectors = nil
}

func (t *Terminal) Len() int {
	return len(t.words)
}

// Push appends a newly generated word.
func (t *Terminal) Push(word int, vector []float64) {
	t.words = append(t.words, word)
	t.vectors = append(t.vectors, vector)
}

// Words returns the generated sentence so far.
func (t *Terminal) Words() []int {
	return t.words
}

func (t *Terminal) TopVector(m Model) []float64 {
	if len(t.vectors) == 0 {
		return m.EmptyEmbedding()
	}
	return t.vectors[len(t.vectors)-1]
}

func (t *Terminal) Copy() *Terminal {
	// Append-only: forks must not share backing arrays, or two siblings
	// appending would overwrite each other's elements.
	words := make([]int, len(t.words))
	copy(words, t.words)
	vectors := make([][]float64, len(t.vectors))
	copy(vectors, t.vectors)
	return &Terminal{words: words, vectors: vectors}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("Terminal (%d words)", len(t.words))
}

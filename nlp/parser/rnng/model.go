package rnng

// Model is the scoring boundary: everything neural lives behind it. The
// core derives an opaque state representation from the stack, buffer and
// history tops and the model maps it to logits over the coarse actions and
// over nonterminal labels. Embedding lookup and composition also belong to
// the model; the core only moves the resulting vectors around.
//
// Implementations must be safe for concurrent use: decoding across
// sentences shares one model between workers.
type Model interface {
	// EmbedWord, EmbedNonTerminal and EmbedAction look up input vectors.
	// EmbedAction receives a flat transition value.
	EmbedWord(id int) []float64
	EmbedNonTerminal(id int) []float64
	EmbedAction(id int) []float64

	// EmptyEmbedding is the sentinel vector reported as the top of an
	// empty stack, buffer or history.
	EmptyEmbedding() []float64

	// Compose collapses a closed constituent: the label vector and the
	// ordered child vectors become the vector of the completed frame.
	// It must handle a single child as well as long spans.
	Compose(label []float64, children [][]float64) []float64

	// ScoreActions returns logits over the coarse actions
	// [Shift, Reduce, Open]; ScoreLabels over the nonterminal labels.
	ScoreActions(state []float64) []float64
	ScoreLabels(state []float64) []float64
}

// GenerativeModel additionally scores word generation over the full
// vocabulary, enabling joint probabilities p(x,y).
type GenerativeModel interface {
	Model
	ScoreWords(state []float64) []float64
}

// BufferEncoder is optionally implemented by models that encode the whole
// buffer once after initialization (e.g. with a recurrent pass); the
// contextual vectors then replace the plain embeddings as buffer tops.
type BufferEncoder interface {
	EncodeBuffer(embeddings [][]float64) [][]float64
}

// UniformModel is the reference model: zero vectors and zero logits, so
// every masked distribution is uniform. It lets the decoding machinery run
// end to end without a trained scorer and anchors sampling tests.
type UniformModel struct {
	Dim       int
	NumLabels int
	NumWords  int
}

var _ GenerativeModel = &UniformModel{}

func NewUniformModel(vocab *Vocab) *UniformModel {
	return &UniformModel{
		Dim:       8,
		NumLabels: vocab.NonTerminals.Len(),
		NumWords:  vocab.Words.Len(),
	}
}

func (m *UniformModel) EmbedWord(id int) []float64 {
	return make([]float64, m.Dim)
}

func (m *UniformModel) EmbedNonTerminal(id int) []float64 {
	return make([]float64, m.Dim)
}

func (m *UniformModel) EmbedAction(id int) []float64 {
	return make([]float64, m.Dim)
}

func (m *UniformModel) EmptyEmbedding() []float64 {
	return make([]float64, m.Dim)
}

func (m *UniformModel) Compose(label []float64, children [][]float64) []float64 {
	return make([]float64, m.Dim)
}

func (m *UniformModel) ScoreActions(state []float64) []float64 {
	return make([]float64, NumCoarseActions)
}

func (m *UniformModel) ScoreLabels(state []float64) []float64 {
	return make([]float64, m.NumLabels)
}

func (m *UniformModel) ScoreWords(state []float64) []float64 {
	return make([]float64, m.NumWords)
}

package ngram

const (
	// StartToken pads the front of every sentence. It only ever appears in
	// contexts and is never emitted by Generate.
	StartToken = "<s>"
	// EndToken closes every sentence. Sampling it ends generation.
	EndToken = "</s>"
	// UnknownToken replaces tokens that occur fewer than MinCount times.
	UnknownToken = "<unk>"
)

// isReserved reports whether token is one of the three markers.
func isReserved(token string) bool {
	return token == StartToken || token == EndToken || token == UnknownToken
}

// Tokenizer splits already lowercased text into sentences of tokens. This
// lets the counting and sampling logic stay independent of how text is
// segmented.
type Tokenizer interface {
	// Sentences returns the tokens of every sentence in text, in order.
	// Sentences without any tokens must be omitted. Tokens may contain
	// any characters, spaces included.
	Sentences(text string) [][]string
}

// ChainToken is one possible successor of a context together with the
// number of times it followed that context in the training text.
type ChainToken struct {
	Text string
	Freq int
}

package ngram

import "regexp"

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// It splits text into sentences on runs of sentence-ending punctuation and
// extracts maximal runs of word characters from each sentence. Its behavior
// can be customized with functional options.
type DefaultTokenizer struct {
	sentenceRegex *regexp.Regexp
	wordRegex     *regexp.Regexp
}

// TokenizerOption is a function that configures a DefaultTokenizer.
type TokenizerOption func(*DefaultTokenizer)

// WithSentenceRegex sets the regex used to split text into sentences. Matches
// are discarded.
// Default: `[.!?]+`
func WithSentenceRegex(sentenceRegex string) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.sentenceRegex = regexp.MustCompile(sentenceRegex)
	}
}

// WithWordRegex sets the regex used to extract tokens from a sentence.
// Default: `[\p{L}\p{N}_]+`
func WithWordRegex(wordRegex string) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.wordRegex = regexp.MustCompile(wordRegex)
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can
// be overridden by providing one or more TokenizerOption functions.
func NewDefaultTokenizer(opts ...TokenizerOption) *DefaultTokenizer {
	t := &DefaultTokenizer{
		// One or more consecutive terminators act as a single delimiter.
		sentenceRegex: regexp.MustCompile(`[.!?]+`),
		// Unicode letters, digits and underscore; Go's \w is ASCII only.
		wordRegex: regexp.MustCompile(`[\p{L}\p{N}_]+`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Sentences splits text into tokenized sentences, dropping sentences that
// contain no tokens.
func (t *DefaultTokenizer) Sentences(text string) [][]string {
	var sentences [][]string
	for _, sentence := range t.sentenceRegex.Split(text, -1) {
		tokens := t.wordRegex.FindAllString(sentence, -1)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

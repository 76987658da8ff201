package ngram

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Train rebuilds the model from text. All previous state is discarded before
// anything else happens, so training on empty text, or on text without a
// single word, leaves the model untrained with empty tables. Train never
// fails.
func (m *Model) Train(text string) {
	m.reset()

	text = strings.TrimSpace(text)
	if text == "" {
		m.logger.Debug("Training skipped, empty input")
		return
	}

	sentences := m.tokenizer.Sentences(strings.ToLower(text))
	if len(sentences) == 0 {
		m.logger.Debug("Training skipped, no tokens in input")
		return
	}

	m.vocab = buildVocabulary(sentences, m.minCount)

	var windows int
	padded := make([]string, 0, 64)
	for _, sentence := range sentences {
		padded = m.padSentence(padded[:0], sentence)
		windows += m.countWindows(padded)
	}

	m.trained = true

	m.logger.Info("Training completed",
		slog.Int("order", m.order),
		slog.Int("sentences_processed", len(sentences)),
		slog.Int("vocab_size", len(m.vocab)),
		slog.Int("contexts", len(m.counts)),
		slog.Int("windows_counted", windows),
	)
}

// TrainReader reads all of r and trains on it. The only error it returns is a
// failure to read r, in which case the model is left untouched.
func (m *Model) TrainReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read training data: %w", err)
	}
	m.Train(string(data))
	return nil
}

// padSentence appends the folded sentence to dst between order-1 start
// markers and a single end marker.
func (m *Model) padSentence(dst []string, sentence []string) []string {
	for i := 0; i < m.order-1; i++ {
		dst = append(dst, StartToken)
	}
	for _, token := range sentence {
		if _, ok := m.vocab[token]; ok {
			dst = append(dst, token)
		} else {
			dst = append(dst, UnknownToken)
		}
	}
	return append(dst, EndToken)
}

// countWindows slides a window of the model's order over tokens and records
// each (context, target) pair. It returns the number of windows counted.
func (m *Model) countWindows(tokens []string) int {
	windows := len(tokens) - (m.order - 1)
	for i := 0; i < windows; i++ {
		ctx := NewContext(tokens[i : i+m.order-1]...)
		m.increment(ctx, tokens[i+m.order-1])
	}
	return windows
}

// increment bumps a single transition and its context total together.
func (m *Model) increment(ctx Context, target string) {
	t, ok := m.counts[ctx]
	if !ok {
		t = &transitions{counts: make(map[string]int)}
		m.counts[ctx] = t
	}
	t.add(target)
	m.totals[ctx]++
}

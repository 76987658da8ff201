package ngram

import (
	"iter"
	"log/slog"
	"strings"
)

// Sample draws the next token for ctx, weighting each successor by its count.
// An unseen context falls back to the all-start context; if that is unseen
// too, or has no counts, EndToken is returned so callers always terminate.
func (m *Model) Sample(ctx Context) string {
	t, ok := m.counts[ctx]
	if !ok {
		ctx = startContext(m.order - 1)
		if t, ok = m.counts[ctx]; !ok {
			return EndToken
		}
	}

	total := m.totals[ctx]
	if total == 0 {
		return EndToken
	}

	threshold := m.rand.Float64() * float64(total)
	var cumulative float64
	for _, token := range t.order {
		cumulative += float64(t.counts[token])
		if cumulative >= threshold {
			return token
		}
	}
	// Only reachable through float rounding.
	return EndToken
}

// Tokens returns an iterator over up to maxLength generated tokens. It stops
// early when EndToken is sampled; the end marker itself is never yielded.
// An untrained model yields nothing.
func (m *Model) Tokens(maxLength int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !m.trained || len(m.counts) == 0 {
			return
		}

		ctx := startContext(m.order - 1)
		for generated := 0; generated < maxLength; generated++ {
			next := m.Sample(ctx)
			if next == EndToken {
				m.logger.Debug("Generation terminated by end token",
					slog.Int("generated_length", generated),
				)
				return
			}
			if !yield(next) {
				return
			}
			ctx = ctx.Shift(next)
		}
		m.logger.Debug("Generation terminated by reaching maxLength",
			slog.Int("max_length", maxLength),
		)
	}
}

// Generate samples up to maxLength tokens starting from the all-start context
// and returns them joined by single spaces. It returns an empty string when
// the model is untrained or maxLength is not positive.
func (m *Model) Generate(maxLength int) string {
	var builder strings.Builder
	for token := range m.Tokens(maxLength) {
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(token)
	}
	return builder.String()
}

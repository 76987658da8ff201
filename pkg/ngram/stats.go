package ngram

// ModelStats holds aggregated statistics for a trained Model.
type ModelStats struct {
	VocabSize      int // Tokens kept verbatim, excluding the reserved markers.
	Contexts       int // Unique contexts in the transition table.
	Transitions    int // Unique context->next_token links.
	TotalFrequency int // Sum of all link counts; the number of windows trained.
	StartingTokens int // Unique tokens that can follow the all-start context.
}

// Stats returns a snapshot of the model's table sizes.
func (m *Model) Stats() ModelStats {
	var stats ModelStats
	for token := range m.vocab {
		if !isReserved(token) {
			stats.VocabSize++
		}
	}

	stats.Contexts = len(m.counts)
	for ctx, t := range m.counts {
		stats.Transitions += len(t.order)
		stats.TotalFrequency += m.totals[ctx]
	}

	if t, ok := m.counts[startContext(m.order-1)]; ok {
		stats.StartingTokens = len(t.order)
	}
	return stats
}

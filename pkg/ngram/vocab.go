package ngram

// buildVocabulary returns every token occurring at least minCount times
// across sentences, plus the reserved markers. If folding would leave no
// ordinary token at all, every observed token is kept instead.
func buildVocabulary(sentences [][]string, minCount int) map[string]struct{} {
	frequency := make(map[string]int)
	for _, sentence := range sentences {
		for _, token := range sentence {
			frequency[token]++
		}
	}

	vocab := make(map[string]struct{}, len(frequency)+3)
	for token, count := range frequency {
		if count >= minCount {
			vocab[token] = struct{}{}
		}
	}
	if len(vocab) == 0 {
		for token := range frequency {
			vocab[token] = struct{}{}
		}
	}

	vocab[StartToken] = struct{}{}
	vocab[EndToken] = struct{}{}
	vocab[UnknownToken] = struct{}{}
	return vocab
}

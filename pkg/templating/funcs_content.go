package templating

import "strings"

// ngramSentence generates a single capitalized sentence ending in a period.
// It returns an empty string when no generator is attached or the generator
// produced nothing.
func (tm *TemplateManager) ngramSentence(maxLength int) string {
	if tm.gen == nil {
		tm.logger.Warn("ngramSentence: no generator attached")
		return ""
	}
	if maxLength > tm.config.MaxSentenceLength {
		maxLength = tm.config.MaxSentenceLength
	}
	text := tm.gen.Generate(maxLength)
	if text == "" {
		return ""
	}
	return capitalize(text) + "."
}

// ngramParagraphs generates count paragraphs of sentencesPer sentences each,
// separated by blank lines.
func (tm *TemplateManager) ngramParagraphs(count, sentencesPer, maxLength int) string {
	if count > tm.config.MaxParagraphs {
		count = tm.config.MaxParagraphs
	}
	paragraphs := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		sentences := make([]string, 0, max(sentencesPer, 0))
		for j := 0; j < sentencesPer; j++ {
			if s := tm.ngramSentence(maxLength); s != "" {
				sentences = append(sentences, s)
			}
		}
		paragraphs = append(paragraphs, tm.wrap(strings.Join(sentences, " ")))
	}
	return strings.Join(paragraphs, "\n\n")
}

// wrap breaks text at the configured WrapWidth.
func (tm *TemplateManager) wrap(text string) string {
	return wrapText(text, tm.config.WrapWidth)
}

// rule returns a line of RuleWidth dashes.
func (tm *TemplateManager) rule() string {
	if tm.config.RuleWidth <= 0 {
		return ""
	}
	return strings.Repeat("-", tm.config.RuleWidth)
}

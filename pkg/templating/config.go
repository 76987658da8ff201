package templating

// DefaultSampleTemplate prints a numbered header, the generated text and a
// horizontal rule.
const DefaultSampleTemplate = `Generated Text #{{.Index}}:
{{wrap .Text}}
{{rule}}
`

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// SampleTemplate is the body of the built-in "sample" template.
	SampleTemplate string `json:"sample_template"`

	// RuleWidth is the number of dashes printed by the rule function.
	RuleWidth int `json:"rule_width"`

	// WrapWidth is the column at which wrap breaks lines. Zero disables
	// wrapping.
	WrapWidth int `json:"wrap_width"`

	// MaxSentenceLength caps the maxLength accepted by ngramSentence and
	// ngramParagraphs.
	MaxSentenceLength int `json:"max_sentence_length"`

	// MaxParagraphs caps the paragraph count accepted by ngramParagraphs.
	MaxParagraphs int `json:"max_paragraphs"`
}

// DefaultConfig returns a TemplateConfig that reproduces the plain output
// format: no wrapping and a 60 character rule.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		SampleTemplate:    DefaultSampleTemplate,
		RuleWidth:         60,
		WrapWidth:         0,
		MaxSentenceLength: 500,
		MaxParagraphs:     50,
	}
}

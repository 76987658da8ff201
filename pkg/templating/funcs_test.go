package templating

import (
	"strings"
	"testing"
)

type stubGenerator struct {
	text  string
	calls []int
}

func (s *stubGenerator) Generate(maxLength int) string {
	s.calls = append(s.calls, maxLength)
	return s.text
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"a b c", 0, "a b c"},
		{"the cat sat on the mat", 7, "the cat\nsat on\nthe mat"},
		{"supercalifragilistic is long", 5, "supercalifragilistic\nis\nlong"},
		{"  spaced   out  ", 20, "spaced out"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); got != tt.want {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestSimpleFuncs(t *testing.T) {
	if got := capitalize("élan vital"); got != "Élan vital" {
		t.Errorf("capitalize() = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize(\"\") = %q", got)
	}
	if got := len(repeat(-3)); got != 0 {
		t.Errorf("repeat(-3) has %d elements", got)
	}
	if got := words(" a  b c "); got != 3 {
		t.Errorf("words() = %d, want 3", got)
	}
	if add(2, 3) != 5 || inc(4) != 5 {
		t.Error("arithmetic helpers are broken")
	}
}

func TestNgramFuncs(t *testing.T) {
	gen := &stubGenerator{text: "the cat sat"}
	cfg := DefaultConfig()
	cfg.MaxSentenceLength = 8
	cfg.MaxParagraphs = 2
	cfg.WrapWidth = 12
	tm, err := NewTemplateManager(nil, gen, cfg, "")
	if err != nil {
		t.Fatalf("NewTemplateManager failed: %v", err)
	}

	if got := tm.ngramSentence(100); got != "The cat sat." {
		t.Errorf("ngramSentence() = %q", got)
	}
	if gen.calls[0] != 8 {
		t.Errorf("ngramSentence should clamp maxLength to 8, got %d", gen.calls[0])
	}

	got := tm.ngramParagraphs(5, 2, 4)
	want := "The cat sat.\nThe cat sat.\n\nThe cat sat.\nThe cat sat."
	if got != want {
		t.Errorf("ngramParagraphs() = %q, want %q", got, want)
	}

	gen.text = ""
	if got := tm.ngramSentence(5); got != "" {
		t.Errorf("empty generation should yield an empty sentence, got %q", got)
	}

	noGen, _ := NewTemplateManager(nil, nil, DefaultConfig(), "")
	if got := noGen.ngramSentence(5); got != "" {
		t.Errorf("ngramSentence without generator = %q", got)
	}
	if got := noGen.rule(); got != strings.Repeat("-", 60) {
		t.Errorf("rule() = %q", got)
	}
}

package templating

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// SampleTemplateName is the name of the built-in template executed by
// RenderSample.
const SampleTemplateName = "sample"

// Generator produces a space-joined token sequence of at most maxLength
// tokens. *ngram.Model satisfies it.
type Generator interface {
	Generate(maxLength int) string
}

// Sample is the data passed to the sample template.
type Sample struct {
	Index int    // 1-based position among the generated samples.
	Text  string // The generated text.
	Words int    // Number of tokens in Text.
}

// TemplateManager is the central controller for the templating engine. It
// manages the template set, configuration and function map.
// All methods are concurrent-safe.
type TemplateManager struct {
	logger        *slog.Logger
	config        *TemplateConfig
	gen           Generator
	templates     *template.Template
	templateNames []string
	funcMap       template.FuncMap
	templateDir   string
	mu            sync.RWMutex
}

// NewTemplateManager creates, initializes, and returns a new TemplateManager.
// gen may be nil if no template calls the ngram functions. templateDir may be
// empty, in which case only the built-in sample template is available. It
// performs an initial Refresh to parse all templates.
func NewTemplateManager(logger *slog.Logger, gen Generator, config TemplateConfig, templateDir string) (*TemplateManager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tm := &TemplateManager{
		logger:      logger,
		gen:         gen,
		config:      &config,
		templateDir: templateDir,
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Debug("Template manager initialized", "templates", len(tm.templateNames))
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Content generation (funcs_content.go)
		"ngramSentence":   tm.ngramSentence,
		"ngramParagraphs": tm.ngramParagraphs,
		"wrap":            tm.wrap,
		"rule":            tm.rule,

		// Simple (funcs_simple.go)
		"add":        add,
		"inc":        inc,
		"repeat":     repeat,
		"words":      words,
		"capitalize": capitalize,
		"upper":      strings.ToUpper,
	}
}

// SetConfig applies a new configuration. The sample template is re-parsed, so
// a broken SampleTemplate is reported here and the previous config is kept.
// The new config and the templates parsed from it are installed together.
func (tm *TemplateManager) SetConfig(config TemplateConfig) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	parsed, names, err := tm.parseTemplates(config.SampleTemplate)
	if err != nil {
		return fmt.Errorf("template configuration rejected: %w", err)
	}
	tm.config = &config
	tm.templates = parsed
	tm.templateNames = names
	tm.logger.Debug("Loaded templates", "count", len(names))
	return nil
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// Refresh re-parses the built-in sample template and reloads every
// *.tmpl.txt file from the template directory.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	parsed, names, err := tm.parseTemplates(tm.config.SampleTemplate)
	if err != nil {
		return err
	}
	tm.templates = parsed
	tm.templateNames = names
	tm.logger.Debug("Loaded templates", "count", len(names))
	return nil
}

// parseTemplates builds a fresh template set from sample and the template
// directory without touching the manager's state.
func (tm *TemplateManager) parseTemplates(sample string) (*template.Template, []string, error) {
	parsed, err := template.New(SampleTemplateName).Funcs(tm.funcMap).Parse(sample)
	if err != nil {
		tm.logger.Error("failed to parse sample template", "error", err)
		return nil, nil, fmt.Errorf("failed to parse sample template: %w", err)
	}
	names := []string{SampleTemplateName}

	if tm.templateDir != "" {
		pattern := filepath.Join(tm.templateDir, "*.tmpl.txt")
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("bad template pattern %q: %w", pattern, err)
		}
		if len(files) > 0 {
			if parsed, err = parsed.ParseFiles(files...); err != nil {
				tm.logger.Error("failed to parse template files", "error", err)
				return nil, nil, err
			}
			for _, file := range files {
				names = append(names, filepath.Base(file))
			}
		}
	}
	return parsed, names, nil
}

// Execute renders a specific template by name, writing the output to w.
func (tm *TemplateManager) Execute(w io.Writer, name string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.ExecuteTemplate(w, name, data)
}

// RenderSample renders s with the built-in sample template.
func (tm *TemplateManager) RenderSample(w io.Writer, s Sample) error {
	if s.Words == 0 {
		s.Words = words(s.Text)
	}
	return tm.Execute(w, SampleTemplateName, s)
}

// GetTemplateNames returns the names of all loaded templates, the built-in
// sample template first.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return append([]string(nil), tm.templateNames...)
}

// ExecuteTemplateString parses and executes a raw template string using the
// manager's function map. This is ideal for previewing templates without
// saving them to disk.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	t, err := template.New("inline").Funcs(tm.funcMap).Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}
	return t.Execute(w, data)
}

package ngram

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// DefaultMinCount is the frequency a token needs to stay out of UnknownToken
// folding when WithMinCount is not given.
const DefaultMinCount = 2

// ErrInvalidConfiguration is returned by New when the model cannot be built
// from the given settings.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// RandSource supplies uniform random numbers in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	Float64() float64
}

// sharedRand delegates to the process-wide math/rand/v2 generator.
type sharedRand struct{}

func (sharedRand) Float64() float64 { return rand.Float64() }

// transitions holds the successors of one context. Tokens are kept in the
// order they were first counted so sampling walks them in a stable order.
type transitions struct {
	order  []string
	counts map[string]int
}

func (t *transitions) add(token string) {
	if _, ok := t.counts[token]; !ok {
		t.order = append(t.order, token)
	}
	t.counts[token]++
}

// Model is an n-gram language model. It owns its transition table, context
// totals and vocabulary exclusively; Train rebuilds all of them and the
// generation methods only read them.
type Model struct {
	order     int
	minCount  int
	tokenizer Tokenizer
	rand      RandSource
	logger    *slog.Logger

	counts  map[Context]*transitions
	totals  map[Context]int
	vocab   map[string]struct{}
	trained bool
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithMinCount sets the minimum number of occurrences a token needs to be
// kept verbatim. Rarer tokens are replaced with UnknownToken.
// Default: 2
func WithMinCount(n int) Option {
	return func(m *Model) { m.minCount = n }
}

// WithTokenizer replaces the DefaultTokenizer used to segment training text.
func WithTokenizer(t Tokenizer) Option {
	return func(m *Model) {
		if t != nil {
			m.tokenizer = t
		}
	}
}

// WithRand sets the random source used for sampling. By default the shared
// math/rand/v2 generator is used.
func WithRand(r RandSource) Option {
	return func(m *Model) {
		if r != nil {
			m.rand = r
		}
	}
}

// New creates an untrained Model with the given context order. The order is
// the window size n, so every context holds n-1 tokens; it must be at least 2.
func New(order int, opts ...Option) (*Model, error) {
	if order < 2 {
		return nil, fmt.Errorf("%w: order must be >= 2, got %d", ErrInvalidConfiguration, order)
	}

	m := &Model{
		order:     order,
		minCount:  DefaultMinCount,
		tokenizer: NewDefaultTokenizer(),
		rand:      sharedRand{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()

	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetRand replaces the random source used for sampling. Passing a freshly
// seeded source before each Generate call makes the output reproducible.
func (m *Model) SetRand(r RandSource) {
	if r != nil {
		m.rand = r
	}
}

// reset returns the model to its untrained state with empty tables.
func (m *Model) reset() {
	m.counts = make(map[Context]*transitions)
	m.totals = make(map[Context]int)
	m.vocab = map[string]struct{}{
		StartToken:   {},
		EndToken:     {},
		UnknownToken: {},
	}
	m.trained = false
}

// Order returns the window size n the model was built with.
func (m *Model) Order() int {
	return m.order
}

// MinCount returns the unknown-token folding threshold.
func (m *Model) MinCount() int {
	return m.minCount
}

// Trained reports whether the last call to Train produced any counts.
func (m *Model) Trained() bool {
	return m.trained
}

// InVocabulary reports whether token is kept verbatim by the current
// vocabulary. The reserved markers are always in the vocabulary.
func (m *Model) InVocabulary(token string) bool {
	_, ok := m.vocab[token]
	return ok
}

// Vocabulary returns the current vocabulary, sorted.
func (m *Model) Vocabulary() []string {
	out := make([]string, 0, len(m.vocab))
	for token := range m.vocab {
		out = append(out, token)
	}
	slices.Sort(out)
	return out
}

// Count returns how many times token followed ctx in the training text.
func (m *Model) Count(ctx Context, token string) int {
	t, ok := m.counts[ctx]
	if !ok {
		return 0
	}
	return t.counts[token]
}

// Total returns the sum of all successor counts recorded for ctx.
func (m *Model) Total(ctx Context) int {
	return m.totals[ctx]
}

// Next returns every successor of ctx with its frequency, in the order they
// were first seen during training. It returns nil for an unseen context.
func (m *Model) Next(ctx Context) []ChainToken {
	t, ok := m.counts[ctx]
	if !ok {
		return nil
	}
	out := make([]ChainToken, 0, len(t.order))
	for _, token := range t.order {
		out = append(out, ChainToken{Text: token, Freq: t.counts[token]})
	}
	return out
}

// Contexts returns every context present in the transition table, sorted by
// their tokens.
func (m *Model) Contexts() []Context {
	out := make([]Context, 0, len(m.counts))
	for ctx := range m.counts {
		out = append(out, ctx)
	}
	slices.SortFunc(out, func(a, b Context) int {
		return slices.Compare(a.Tokens(), b.Tokens())
	})
	return out
}

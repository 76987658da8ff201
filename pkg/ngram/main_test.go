package ngram

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTestModel creates a Model for testing, failing the test on a bad order.
func newTestModel(t testing.TB, order int, opts ...Option) *Model {
	t.Helper()
	m, err := New(order, opts...)
	if err != nil {
		t.Fatalf("New(%d) error = %v", order, err)
	}
	return m
}

// newTrainedModel is a convenience helper that also trains the model.
func newTrainedModel(t testing.TB, order int, text string, opts ...Option) *Model {
	t.Helper()
	m := newTestModel(t, order, opts...)
	m.Train(text)
	if !m.Trained() {
		t.Fatalf("setup: Train(%q) left the model untrained", text)
	}
	return m
}

// fixedRand is a RandSource that always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// assertTotalsConsistent checks that every context total equals the sum of
// its successor counts.
func assertTotalsConsistent(t *testing.T, m *Model) {
	t.Helper()
	if len(m.counts) != len(m.totals) {
		t.Errorf("transition table has %d contexts, totals table has %d", len(m.counts), len(m.totals))
	}
	for ctx, tr := range m.counts {
		var sum int
		for _, token := range tr.order {
			sum += tr.counts[token]
		}
		if len(tr.order) != len(tr.counts) {
			t.Errorf("context %v: order has %d tokens, counts has %d", ctx, len(tr.order), len(tr.counts))
		}
		if got := m.Total(ctx); got != sum {
			t.Errorf("context %v: Total() = %d, sum of counts = %d", ctx, got, sum)
		}
	}
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI invokes run with captured output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// writeCorpus writes text to a corpus file in a temp dir and returns its path.
func writeCorpus(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

// writeConfig marshals cfg into a temp config file and returns its path.
func writeConfig(t *testing.T, cfg *Config) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if err = os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const testBook = `Header text.
*** START OF THE PROJECT GUTENBERG EBOOK TEST ***
The   cat sat.
The cat    ran.
*** END OF THE PROJECT GUTENBERG EBOOK TEST ***
License.
`

// fetchConfig points the corpus settings at srv and keeps every file inside
// a temp dir.
func fetchConfig(t *testing.T, srv *httptest.Server) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Corpus.OutputPath = filepath.Join(dir, "out", "corpus.txt")
	cfg.Corpus.DatabasePath = filepath.Join(dir, "db", "cache.db")
	cfg.Corpus.URLTemplates = []string{srv.URL + "/missing/{id}.txt", srv.URL + "/books/{id}.txt"}
	cfg.Corpus.TimeoutSec = 5
	return cfg, writeConfig(t, cfg)
}

func newBookServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books/11.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(testBook))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(out, "sundew dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	corpusPath := writeCorpus(t, "a b c. a b c.")
	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{"-config="}},
		{"unknown command", []string{"-config=", "frobnicate"}},
		{"order too small", []string{"-config=", "generate", "-corpus", corpusPath, "-order", "1"}},
		{"bad flag", []string{"-config=", "generate", "-bogus"}},
		{"fetch without book", []string{"-config=", "fetch"}},
		{"cache without subcommand", []string{"-config=", "cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, tt.args...); code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
		})
	}
}

func TestRun_GenerateDeterministicChain(t *testing.T) {
	corpusPath := writeCorpus(t, "a b c. a b c.")

	code, out, errOut := runCLI(t, "-config=", "generate", "-corpus", corpusPath, "-order", "2", "-num-samples", "2")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	rule := strings.Repeat("-", 60)
	want := "Generated Text #1:\na b c\n" + rule + "\n" + "Generated Text #2:\na b c\n" + rule + "\n"
	if out != want {
		t.Errorf("generate output = %q, want %q", out, want)
	}
}

func TestRun_GenerateSeedReproducible(t *testing.T) {
	corpusPath := writeCorpus(t, "The cat sat. The cat ran. The dog sat. The dog ran. A cat sat.")
	args := []string{"-config=", "generate", "-corpus", corpusPath, "-min-count", "1", "-seed", "42", "-num-samples", "3"}

	code, first, errOut := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	_, second, _ := runCLI(t, args...)
	if first != second {
		t.Errorf("seeded runs differ:\n%s\n---\n%s", first, second)
	}
	if strings.Count(first, "Generated Text #") != 3 {
		t.Errorf("expected 3 samples, got output %q", first)
	}
}

func TestRun_GenerateMissingCorpus(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	if code, _, _ := runCLI(t, "-config=", "generate", "-corpus", missing); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_FetchAndCache(t *testing.T) {
	srv := newBookServer(t)
	cfg, configPath := fetchConfig(t, srv)

	code, out, errOut := runCLI(t, "-config", configPath, "fetch", "-book-id", "11")
	if code != 0 {
		t.Fatalf("fetch exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, cfg.Corpus.OutputPath) {
		t.Errorf("fetch should report the output path, got %q", out)
	}
	saved, err := os.ReadFile(cfg.Corpus.OutputPath)
	if err != nil {
		t.Fatalf("cleaned corpus was not saved: %v", err)
	}
	if string(saved) != "The cat sat. The cat ran." {
		t.Errorf("saved corpus = %q", saved)
	}

	code, out, errOut = runCLI(t, "-config", configPath, "cache", "list")
	if code != 0 {
		t.Fatalf("cache list exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, srv.URL+"/books/11.txt") {
		t.Errorf("cache list should show the cached book, got %q", out)
	}

	if code, _, errOut = runCLI(t, "-config", configPath, "cache", "rm", "-book-id", "11"); code != 0 {
		t.Fatalf("cache rm exit code = %d, stderr: %s", code, errOut)
	}
	_, out, _ = runCLI(t, "-config", configPath, "cache", "list")
	if strings.Contains(out, "/books/11.txt") {
		t.Errorf("book should be gone after rm, got %q", out)
	}
}

func TestRun_FetchNoCache(t *testing.T) {
	srv := newBookServer(t)
	cfg, configPath := fetchConfig(t, srv)

	code, _, errOut := runCLI(t, "-config", configPath, "fetch", "-book-id", "11", "-no-cache")
	if code != 0 {
		t.Fatalf("fetch exit code = %d, stderr: %s", code, errOut)
	}
	if _, err := os.Stat(cfg.Corpus.DatabasePath); !os.IsNotExist(err) {
		t.Errorf("-no-cache must not create the database, stat err = %v", err)
	}
}

func TestRun_FetchAllSourcesFail(t *testing.T) {
	srv := newBookServer(t)
	_, configPath := fetchConfig(t, srv)

	if code, _, _ := runCLI(t, "-config", configPath, "fetch", "-book-id", "99"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

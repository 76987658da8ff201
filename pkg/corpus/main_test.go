package corpus

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestStore creates a new SQLite database in a temp dir and a Store for
// testing. It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "corpus.db")
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// bookServer serves body for any path whose suffix matches one of paths and
// 404 for everything else. It counts every request it receives.
type bookServer struct {
	*httptest.Server
	requests   atomic.Int64
	mu         sync.Mutex
	userAgents []string
}

func (bs *bookServer) agents() []string {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return append([]string(nil), bs.userAgents...)
}

func newBookServer(t *testing.T, body string, paths ...string) *bookServer {
	t.Helper()
	bs := &bookServer{}
	bs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bs.requests.Add(1)
		bs.mu.Lock()
		bs.userAgents = append(bs.userAgents, r.UserAgent())
		bs.mu.Unlock()
		for _, p := range paths {
			if strings.HasSuffix(r.URL.Path, p) {
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(bs.Close)
	return bs
}

// templates returns URL templates pointing at the test server.
func (bs *bookServer) templates() []string {
	return []string{
		bs.URL + "/cache/epub/{id}/pg{id}.txt",
		bs.URL + "/files/{id}/{id}-0.txt",
		bs.URL + "/files/{id}/{id}.txt",
	}
}

const gutenbergBook = `The Project Gutenberg eBook of Test

This header is boilerplate.
*** START OF THE PROJECT GUTENBERG EBOOK TEST ***

The   cat sat.
The cat    ran.

The dog sat.
*** END OF THE PROJECT GUTENBERG EBOOK TEST ***
License text.
`

// sameDocument compares documents field by field, using time.Equal for the
// fetch time.
func sameDocument(a, b Document) bool {
	return a.BookID == b.BookID &&
		a.SourceURL == b.SourceURL &&
		a.RawBytes == b.RawBytes &&
		a.FetchedAt.Equal(b.FetchedAt) &&
		a.Content == b.Content
}

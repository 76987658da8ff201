package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Document is a cleaned corpus as cached in the Store.
type Document struct {
	BookID    int
	SourceURL string    // Where the raw text was downloaded from.
	RawBytes  int       // Size of the raw download, before cleaning.
	FetchedAt time.Time // Truncated to the second.
	Content   string    // Cleaned text ready for training.
}

// DocumentInfo is a Document without its content, as returned by List.
type DocumentInfo struct {
	BookID       int
	SourceURL    string
	RawBytes     int
	ContentBytes int
	FetchedAt    time.Time
}

// SetupSchema initializes the corpus cache table in the provided database.
// It is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaTexts = `
CREATE TABLE IF NOT EXISTS corpus_texts (
    book_id INTEGER PRIMARY KEY,
    source_url TEXT NOT NULL,
    raw_bytes INTEGER NOT NULL,
    fetched_at INTEGER NOT NULL,
    content TEXT NOT NULL
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTexts); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store caches cleaned documents in SQLite, keyed by book id. It holds
// prepared statements; call Close when done.
type Store struct {
	db         *sql.DB
	stmtGet    *sql.Stmt
	stmtPut    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the statements used by the Store. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (s *Store, err error) {
	var prepared []*sql.Stmt
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		if stmt, err = db.Prepare(query); err != nil {
			return nil
		}
		prepared = append(prepared, stmt)
		return stmt
	}
	defer func() {
		if err != nil {
			for _, stmt := range prepared {
				_ = stmt.Close()
			}
		}
	}()

	stmtGet := prepare(`SELECT source_url, raw_bytes, fetched_at, content FROM corpus_texts WHERE book_id = ?;`)
	stmtPut := prepare(`
INSERT INTO corpus_texts (book_id, source_url, raw_bytes, fetched_at, content) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(book_id) DO UPDATE SET
    source_url = excluded.source_url,
    raw_bytes = excluded.raw_bytes,
    fetched_at = excluded.fetched_at,
    content = excluded.content;`)
	stmtList := prepare(`SELECT book_id, source_url, raw_bytes, length(CAST(content AS BLOB)), fetched_at FROM corpus_texts ORDER BY book_id;`)
	stmtRemove := prepare(`DELETE FROM corpus_texts WHERE book_id = ?;`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare corpus statements: %w", err)
	}

	return &Store{
		db:         db,
		stmtGet:    stmtGet,
		stmtPut:    stmtPut,
		stmtList:   stmtList,
		stmtRemove: stmtRemove,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGet.Close()
	_ = s.stmtPut.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Get returns the cached document for bookID. It returns sql.ErrNoRows if the
// book has not been cached.
func (s *Store) Get(ctx context.Context, bookID int) (Document, error) {
	doc := Document{BookID: bookID}
	var fetchedAt int64
	err := s.stmtGet.QueryRowContext(ctx, bookID).Scan(&doc.SourceURL, &doc.RawBytes, &fetchedAt, &doc.Content)
	if err != nil {
		return Document{}, err
	}
	doc.FetchedAt = time.Unix(fetchedAt, 0).UTC()
	return doc, nil
}

// Put inserts or replaces the cached document for doc.BookID.
func (s *Store) Put(ctx context.Context, doc Document) error {
	_, err := s.stmtPut.ExecContext(ctx, doc.BookID, doc.SourceURL, doc.RawBytes, doc.FetchedAt.Unix(), doc.Content)
	if err != nil {
		return fmt.Errorf("could not store book %d: %w", doc.BookID, err)
	}
	s.logger.InfoContext(ctx, "Document cached",
		slog.Int("book_id", doc.BookID),
		slog.Int("content_bytes", len(doc.Content)),
	)
	return nil
}

// List returns metadata for every cached document, ordered by book id.
func (s *Store) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		var fetchedAt int64
		if err = rows.Scan(&info.BookID, &info.SourceURL, &info.RawBytes, &info.ContentBytes, &fetchedAt); err != nil {
			return nil, err
		}
		info.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the cached document for bookID. Removing a book that is not
// cached is not an error.
func (s *Store) Remove(ctx context.Context, bookID int) error {
	res, err := s.stmtRemove.ExecContext(ctx, bookID)
	if err != nil {
		return fmt.Errorf("could not remove book %d: %w", bookID, err)
	}
	removed, _ := res.RowsAffected()
	s.logger.InfoContext(ctx, "Document removed",
		slog.Int("book_id", bookID),
		slog.Int64("rows_removed", removed),
	)
	return nil
}

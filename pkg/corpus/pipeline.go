package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Pipeline fetches books, cleans them, and caches the cleaned documents.
type Pipeline struct {
	fetcher *Fetcher
	store   *Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewPipeline creates a Pipeline. store may be nil, in which case every Fetch
// downloads the book again.
func NewPipeline(fetcher *Fetcher, store *Store) *Pipeline {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &Pipeline{
		fetcher: fetcher,
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
}

// SetLogger sets the logger for the Pipeline. By default, all logs are discarded.
func (p *Pipeline) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Fetch returns the cleaned document for bookID. A cached copy is returned
// when present unless refresh is set; otherwise the book is downloaded,
// cleaned, and written back to the cache.
func (p *Pipeline) Fetch(ctx context.Context, bookID int, refresh bool) (Document, error) {
	if p.store != nil && !refresh {
		doc, err := p.store.Get(ctx, bookID)
		if err == nil {
			p.logger.InfoContext(ctx, "Using cached document",
				slog.Int("book_id", bookID),
				slog.Time("fetched_at", doc.FetchedAt),
			)
			return doc, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return Document{}, fmt.Errorf("could not read cache for book %d: %w", bookID, err)
		}
	}

	raw, url, err := p.fetcher.Download(ctx, bookID)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		BookID:    bookID,
		SourceURL: url,
		RawBytes:  len(raw),
		FetchedAt: p.now().UTC().Truncate(time.Second),
		Content:   Clean(raw),
	}
	p.logger.InfoContext(ctx, "Document cleaned",
		slog.Int("book_id", bookID),
		slog.Int("raw_bytes", doc.RawBytes),
		slog.Int("content_bytes", len(doc.Content)),
	)

	if p.store != nil {
		if err = p.store.Put(ctx, doc); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

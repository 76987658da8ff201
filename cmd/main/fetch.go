package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/CTAG07/Sundew/pkg/corpus"
)

// openStore opens the corpus cache database, creating its directory and
// schema if needed. The returned cleanup closes both the store and the
// database.
func (a *app) openStore() (*corpus.Store, func(), error) {
	path := a.config.Corpus.DatabasePath
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}

// runFetch downloads (or loads from cache) a Gutenberg book, cleans it and
// writes the cleaned text to the output path.
func (a *app) runFetch(ctx context.Context, args []string) error {
	cfg := a.config.Corpus
	fs := a.newFlagSet("fetch")
	bookID := fs.Int("book-id", 0, "Project Gutenberg numeric ID (e.g., 11 for Alice in Wonderland)")
	output := fs.String("output", cfg.OutputPath, "where to store the cleaned text")
	refresh := fs.Bool("refresh", false, "download again even if the book is cached")
	noCache := fs.Bool("no-cache", false, "do not read or write the corpus cache")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *bookID <= 0 {
		return fmt.Errorf("%w: -book-id is required and must be positive", errUsage)
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	fetcher := corpus.NewFetcher(
		corpus.WithHTTPClient(&http.Client{Timeout: timeout}),
		corpus.WithURLTemplates(cfg.URLTemplates...),
		corpus.WithUserAgent(cfg.UserAgent),
		corpus.WithFetchLogger(a.logger),
	)

	var store *corpus.Store
	if !*noCache {
		s, closeStore, err := a.openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		store = s
	}

	pipeline := corpus.NewPipeline(fetcher, store)
	pipeline.SetLogger(a.logger)

	doc, err := pipeline.Fetch(ctx, *bookID, *refresh)
	if err != nil {
		return err
	}
	if err = corpus.Save(*output, doc.Content); err != nil {
		return err
	}

	a.logger.Info("Corpus saved",
		slog.Int("book_id", doc.BookID),
		slog.String("source_url", doc.SourceURL),
		slog.String("output", *output),
	)
	_, _ = fmt.Fprintf(a.stdout, "Saved cleaned corpus to %s\n", *output)
	return nil
}

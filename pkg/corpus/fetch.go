package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultUserAgent is sent with every download request.
const DefaultUserAgent = "sundew/1.0"

// DefaultURLTemplates lists the Gutenberg locations tried in order. Every
// "{id}" is replaced with the numeric book id.
var DefaultURLTemplates = []string{
	"https://www.gutenberg.org/cache/epub/{id}/pg{id}.txt",
	"https://www.gutenberg.org/files/{id}/{id}-0.txt",
	"https://www.gutenberg.org/files/{id}/{id}.txt",
}

var (
	// ErrDownloadFailed is returned when no URL template produced the book.
	ErrDownloadFailed = errors.New("unable to download Project Gutenberg text")
	// ErrInvalidBookID is returned for non-positive book ids.
	ErrInvalidBookID = errors.New("invalid book id")
)

// Fetcher downloads raw book text over HTTP, falling back through a list of
// URL templates until one succeeds.
type Fetcher struct {
	client    *http.Client
	templates []string
	userAgent string
	logger    *slog.Logger
}

// FetchOption is a function that configures a Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for downloads.
// Default: a client with a 60 second timeout.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithURLTemplates replaces the URL templates tried for each book.
// Default: DefaultURLTemplates
func WithURLTemplates(templates ...string) FetchOption {
	return func(f *Fetcher) {
		if len(templates) > 0 {
			f.templates = templates
		}
	}
}

// WithUserAgent sets the User-Agent header.
// Default: DefaultUserAgent
func WithUserAgent(userAgent string) FetchOption {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithFetchLogger sets the logger. By default, all logs are discarded.
func WithFetchLogger(logger *slog.Logger) FetchOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher with default settings, which can be overridden
// by providing one or more FetchOption functions.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 60 * time.Second},
		templates: DefaultURLTemplates,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Download returns the raw text of a book and the URL it was fetched from.
// Every URL template is tried in order; the first successful response wins.
// If all of them fail, the returned error wraps ErrDownloadFailed together
// with each individual attempt's error.
func (f *Fetcher) Download(ctx context.Context, bookID int) (string, string, error) {
	if bookID <= 0 {
		return "", "", fmt.Errorf("%w: %d", ErrInvalidBookID, bookID)
	}

	id := strconv.Itoa(bookID)
	attempts := make([]error, 0, len(f.templates))
	for _, tmpl := range f.templates {
		url := strings.ReplaceAll(tmpl, "{id}", id)

		text, err := f.get(ctx, url)
		if err == nil {
			f.logger.InfoContext(ctx, "Book downloaded",
				slog.Int("book_id", bookID),
				slog.String("url", url),
				slog.Int("bytes", len(text)),
			)
			return text, url, nil
		}

		f.logger.DebugContext(ctx, "Download attempt failed",
			slog.Int("book_id", bookID),
			slog.String("url", url),
			slog.Any("error", err),
		)
		attempts = append(attempts, fmt.Errorf("%s: %w", url, err))

		// A cancelled context fails every remaining attempt the same way.
		if ctx.Err() != nil {
			break
		}
	}

	return "", "", fmt.Errorf("%w (book %d): %w", ErrDownloadFailed, bookID, errors.Join(attempts...))
}

// get performs a single request and returns the body with invalid UTF-8
// dropped.
func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"
)

// runCache handles "cache list" and "cache rm -book-id N".
func (a *app) runCache(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cache needs a subcommand: list or rm", errUsage)
	}

	switch args[0] {
	case "list":
		return a.cacheList(ctx)
	case "rm":
		fs := a.newFlagSet("cache rm")
		bookID := fs.Int("book-id", 0, "book to remove from the cache")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *bookID <= 0 {
			return fmt.Errorf("%w: -book-id is required and must be positive", errUsage)
		}
		store, closeStore, err := a.openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		return store.Remove(ctx, *bookID)
	default:
		return fmt.Errorf("%w: unknown cache subcommand %q", errUsage, args[0])
	}
}

func (a *app) cacheList(ctx context.Context) error {
	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	infos, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list cached corpora: %w", err)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BOOK\tRAW\tCLEANED\tFETCHED\tSOURCE")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n",
			info.BookID, info.RawBytes, info.ContentBytes, info.FetchedAt.Format(time.RFC3339), info.SourceURL)
	}
	return tw.Flush()
}

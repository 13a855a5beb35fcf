// Command lawindex rebuilds the legislation search index from the
// relational store, batch by batch.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/eaudeweb/lawkit/internal/domain"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/eaudeweb/lawkit/internal/storage/es"
	"github.com/eaudeweb/lawkit/internal/storage/pg"
)

func main() {
	ctx := context.Background()

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	pool, err := pg.NewConnectionPool(ctx, cfg.Pool)
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	indexer, err := es.NewIndexer(ctx, cfg.Client, cfg.Explorer.FacetJoinToken)
	if err != nil {
		slog.Error("Failed to create indexer", "error", err)
		os.Exit(1)
	}

	if err := reindex(ctx, pg.NewLawStore(pool), indexer, cfg.BatchSize); err != nil {
		slog.Error("Reindex failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Reindex completed")
}

func reindex(ctx context.Context, store *pg.LawStore, indexer *es.Indexer, batchSize int) error {
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	slog.Info("Starting reindex", "laws", total, "batch_size", batchSize)

	for offset := 0; ; offset += batchSize {
		laws, err := store.List(ctx, storage.OrderYearAsc, offset, batchSize)
		if err != nil {
			return err
		}
		if len(laws) == 0 {
			return nil
		}

		articlesByLaw := make(map[int64][]domain.Article, len(laws))
		for _, law := range laws {
			articles, err := store.Articles(ctx, law.ID)
			if err != nil {
				return err
			}
			articlesByLaw[law.ID] = articles
		}

		if err := indexer.SaveBulk(ctx, laws, articlesByLaw); err != nil {
			return err
		}

		slog.Info("Batch indexed", "offset", offset, "count", len(laws))

		if len(laws) < batchSize {
			return nil
		}
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/directoriodominicano/backend/internal/adapters/database"
	"github.com/directoriodominicano/backend/internal/adapters/search"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/typesense"
	"github.com/directoriodominicano/backend/pkg/config"
)

const indexBatchSize = 500

func main() {
	var reset bool
	var workers int
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.IntVar(&workers, "workers", 8, "number of concurrent indexing workers")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset, workers); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool, workers int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	businessRepo := database.NewBusinessAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting businesses collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.BusinessesCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	searchAdapter := search.NewTypesenseAdapter(tsClient)

	if workers <= 0 {
		workers = 1
	}

	indexed := 0
	for offset := 0; ; offset += indexBatchSize {
		// Only approved entries are searchable; pending ones join the
		// index when moderation approves them.
		businesses, err := businessRepo.List(ctx, repositories.BusinessFilter{
			ApprovedOnly: true,
			Limit:        indexBatchSize,
			Offset:       offset,
		})
		if err != nil {
			return err
		}
		if len(businesses) == 0 {
			break
		}

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(workers)
		for _, business := range businesses {
			if business == nil {
				continue
			}
			b := business
			group.Go(func() error {
				if err := searchAdapter.Index(groupCtx, b); err != nil {
					log.Printf("Failed to index %s: %v", b.Slug, err)
					return nil
				}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}

		indexed += len(businesses)
		log.Printf("Indexed %d businesses so far...", indexed)

		if len(businesses) < indexBatchSize {
			break
		}
	}

	log.Printf("Indexing complete. %d businesses in the collection.", indexed)
	return nil
}

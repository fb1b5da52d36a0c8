// Package enrich coordinates item creation with the background metadata
// fetch that follows it.
package enrich

import (
	"context"
	"sync"

	"github.com/waygate-dev/waygate/internal/domain"
	"github.com/waygate-dev/waygate/internal/logger"
)

// Store is the subset of the item store the coordinator needs.
type Store interface {
	Insert(ctx context.Context, item, title string) (*domain.Item, error)
	UpdateMetadata(ctx context.Context, id int64, meta domain.Metadata) (bool, error)
}

// Fetcher retrieves metadata for a URL. Implementations never fail; they
// degrade to fallback metadata instead.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) domain.Metadata
}

// Enricher creates items and spawns one detached enrichment job per
// creation. The caller gets the placeholder row back immediately; the job's
// update is applied later, or silently dropped if the item was deleted.
type Enricher struct {
	store   Store
	fetcher Fetcher
	logger  logger.Logger

	wg sync.WaitGroup
}

// New creates an Enricher.
func New(store Store, fetcher Fetcher, log logger.Logger) *Enricher {
	return &Enricher{
		store:   store,
		fetcher: fetcher,
		logger:  log,
	}
}

// Create validates raw, persists the placeholder row and returns it. It
// never waits on the network: the metadata fetch runs in a goroutine whose
// lifetime extends past the request.
func (e *Enricher) Create(ctx context.Context, raw string) (*domain.Item, error) {
	if raw == "" {
		return nil, domain.ErrItemRequired
	}

	it, err := e.store.Insert(ctx, raw, raw)
	if err != nil {
		return nil, err
	}

	e.wg.Add(1)
	go e.enrich(it.ID, raw)

	return it, nil
}

// enrich is the one-shot background job for a single item. It is bound to
// the item id, not the row: by the time the fetch completes the item may be
// gone, and the store's conditional update resolves that race atomically.
func (e *Enricher) enrich(id int64, pageURL string) {
	defer e.wg.Done()

	// Detached from the request context; the fetch is bounded by the
	// fetcher's own timeout.
	ctx := context.Background()

	meta := e.fetcher.Fetch(ctx, pageURL)

	changed, err := e.store.UpdateMetadata(ctx, id, meta)
	if err != nil {
		// Nobody is waiting on this job; log and move on.
		e.logger.Warn("failed to apply enrichment",
			logger.Int64("item_id", id),
			logger.Error(err))
		return
	}
	if !changed {
		e.logger.Debug("item deleted before enrichment completed",
			logger.Int64("item_id", id))
		return
	}

	e.logger.Debug("item enriched",
		logger.Int64("item_id", id),
		logger.String("title", meta.Title))
}

// Drain waits for in-flight enrichment jobs, bounded by ctx. Used during
// graceful shutdown so the process does not exit mid-update.
func (e *Enricher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

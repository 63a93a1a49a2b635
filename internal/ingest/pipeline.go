package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
	"github.com/PratikDhanave/vibe-events/internal/metrics"
)

// Pipeline pulls events from a Searcher and reconciles them into a Catalog.
type Pipeline struct {
	searcher Searcher
	catalog  catalog.Catalog
	log      *zap.Logger

	// runs are serialized so two runs never race on the same similarity key.
	mu sync.Mutex
}

// NewPipeline creates a pipeline.
func NewPipeline(searcher Searcher, c catalog.Catalog, log *zap.Logger) *Pipeline {
	return &Pipeline{searcher: searcher, catalog: c, log: log}
}

// Ingest searches once for location and reconciles at most maxEvents results,
// committing each one before the next is looked up. It returns the number of
// new catalog rows. A maxEvents of 0 reconciles nothing; a negative maxEvents
// means no limit.
//
// Missing credentials skip the run and return 0 with no error. Any source or
// storage failure aborts the run and returns 0; rows committed before the
// failure stay.
func (p *Pipeline) Ingest(ctx context.Context, location string, maxEvents int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	records, err := p.searcher.Search(ctx, location)
	if err != nil {
		if errors.Is(err, ErrNoCredentials) {
			p.log.Info("Skipping event ingestion: no search credentials")
			metrics.IngestRuns.WithLabelValues("skipped").Inc()
			return 0, nil
		}
		p.log.Error("Event search failed", zap.String("location", location), zap.Error(err))
		metrics.IngestRuns.WithLabelValues("source_error").Inc()
		return 0, fmt.Errorf("search %q: %w", location, err)
	}

	if maxEvents >= 0 && len(records) > maxEvents {
		records = records[:maxEvents]
	}

	inserted, merged := 0, 0
	for i, rec := range records {
		n, fb := Normalize(rec)
		recordFallbacks(fb)

		action, err := catalog.ReconcileInto(ctx, p.catalog, n)
		if err != nil {
			p.log.Error("Event reconciliation failed",
				zap.Int("index", i),
				zap.String("title", n.Title),
				zap.Int("committed_inserts", inserted),
				zap.Error(err))
			metrics.IngestRuns.WithLabelValues("store_error").Inc()
			return 0, err
		}

		metrics.IngestRecords.WithLabelValues(action.Kind.String()).Inc()
		if action.Kind == catalog.ActionInsert {
			inserted++
		} else {
			merged++
		}
	}

	metrics.IngestRuns.WithLabelValues("ok").Inc()
	p.log.Info("Event ingestion finished",
		zap.String("location", location),
		zap.Int("received", len(records)),
		zap.Int("inserted", inserted),
		zap.Int("merged", merged))

	return inserted, nil
}

func recordFallbacks(fb Fallbacks) {
	if fb.Category {
		metrics.NormalizeFallbacks.WithLabelValues("category").Inc()
	}
	if fb.EventTime {
		metrics.NormalizeFallbacks.WithLabelValues("event_time").Inc()
	}
	if fb.Coordinates {
		metrics.NormalizeFallbacks.WithLabelValues("coordinates").Inc()
	}
}

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner is one ingestion pass; *Pipeline satisfies it.
type Runner interface {
	Ingest(ctx context.Context, location string, maxEvents int) (int, error)
}

// Scheduler re-runs ingestion on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler registers a recurring run of r. spec is a standard five-field
// cron expression or a descriptor such as "@every 6h". Each run gets timeout.
func NewScheduler(spec string, r Runner, location string, maxEvents int, timeout time.Duration, log *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := r.Ingest(ctx, location, maxEvents)
		if err != nil {
			// Already logged by the pipeline.
			return
		}
		log.Info("Scheduled ingestion finished", zap.String("location", location), zap.Int("inserted", n))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid ingest schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

// Start runs the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info("Ingestion scheduled", zap.Time("next_run", e.Next))
	}
}

// Stop halts the schedule and waits for a running pass, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduled ingestion still running at shutdown")
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/config"
	"github.com/PratikDhanave/vibe-events/internal/httpserver"
	"github.com/PratikDhanave/vibe-events/internal/icebreaker"
	"github.com/PratikDhanave/vibe-events/internal/ingest"
	"github.com/PratikDhanave/vibe-events/internal/logger"
	"github.com/PratikDhanave/vibe-events/internal/store"
)

// main boots the service: config → logger → DB → schema/seed → ingestion → HTTP server.
func main() {
	// Load runtime config from environment (DB_URL, API_KEYS, SERPAPI_API_KEY, ...).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(ctx, cfg.DBURL)
	if err != nil {
		zapLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Ensure required tables/indexes exist so `docker compose up --build` is enough.
	if err := db.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("Failed to apply schema", zap.Error(err))
	}
	if n, err := db.SeedEvents(ctx, sampleEvents); err != nil {
		zapLog.Error("Failed to seed sample events", zap.Error(err))
	} else if n > 0 {
		zapLog.Info("Seeded sample events", zap.Int("count", n))
	}

	ingestTimeout := time.Duration(cfg.IngestTimeoutSecs) * time.Second
	searcher := ingest.NewSerpAPIClient(cfg.SerpAPIBaseURL, cfg.SerpAPIKey, ingestTimeout, zapLog)
	pipeline := ingest.NewPipeline(searcher, db, zapLog)

	icebreakers := icebreaker.NewService(
		icebreaker.NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIModel, zapLog),
		zapLog,
	)

	// Startup ingestion runs in the background; the API serves seeded data meanwhile.
	if cfg.IngestOnStartup {
		go func() {
			runCtx, cancel := context.WithTimeout(ctx, ingestTimeout)
			defer cancel()
			// Errors are logged by the pipeline.
			_, _ = pipeline.Ingest(runCtx, cfg.IngestLocation, cfg.IngestMaxEvents)
		}()
	}

	if cfg.IngestSchedule != "" {
		sched, err := ingest.NewScheduler(cfg.IngestSchedule, pipeline,
			cfg.IngestLocation, cfg.IngestMaxEvents, ingestTimeout, zapLog)
		if err != nil {
			zapLog.Fatal("Failed to schedule ingestion", zap.Error(err))
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	// Build HTTP router (public probes + user API + operator API).
	router := httpserver.NewRouter(cfg, httpserver.Deps{
		Store:       db,
		Ingester:    pipeline,
		Icebreakers: icebreakers,
		Log:         zapLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Server started", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

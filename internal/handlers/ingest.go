package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/auth"
	"github.com/PratikDhanave/vibe-events/internal/models"
)

// IngestDefaults fills fields an admin request leaves empty.
type IngestDefaults struct {
	Location  string
	MaxEvents int
	Timeout   time.Duration
}

// RegisterIngestRoutes registers POST /ingest for operators.
// Failures are reported as zero insertions with status "failed".
func RegisterIngestRoutes(r gin.IRoutes, ing Ingester, defaults IngestDefaults, log *zap.Logger) {
	r.POST("/ingest", func(c *gin.Context) {
		var req models.IngestRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		location := strings.TrimSpace(req.Location)
		if location == "" {
			location = defaults.Location
		}
		maxEvents := req.MaxEvents
		if maxEvents == 0 {
			maxEvents = defaults.MaxEvents
		}

		ctx := c.Request.Context()
		if defaults.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, defaults.Timeout)
			defer cancel()
		}

		log.Info("Manual ingestion requested",
			zap.String("operator", auth.Operator(c)),
			zap.String("location", location),
			zap.Int("max_events", maxEvents))

		status := "ok"
		inserted, err := ing.Ingest(ctx, location, maxEvents)
		if err != nil {
			// Already logged by the pipeline.
			status = "failed"
			inserted = 0
		}

		c.JSON(http.StatusOK, models.IngestResponse{
			Location: location,
			Inserted: inserted,
			Status:   status,
		})
	})
}

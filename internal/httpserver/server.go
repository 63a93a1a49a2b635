package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/auth"
	"github.com/PratikDhanave/vibe-events/internal/config"
	"github.com/PratikDhanave/vibe-events/internal/handlers"
	"github.com/PratikDhanave/vibe-events/internal/mapview"
	"github.com/PratikDhanave/vibe-events/internal/metrics"
)

// Store is everything the HTTP layer persists through.
type Store interface {
	handlers.Pinger
	handlers.EventStore
	handlers.UserStore
	handlers.ActivityStore
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store       Store
	Ingester    handlers.Ingester
	Icebreakers handlers.IcebreakerGenerator
	Log         *zap.Logger
}

// NewRouter wires public endpoints, the user API and operator APIs.
// Public: /health, /ready, /metrics, /map
// User API: /api/...
// Operator (X-API-Key): /api/admin/...
func NewRouter(cfg config.Config, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(RequestLogger(d.Log))
	r.Use(metrics.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-API-Key", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	handlers.RegisterHealthRoutes(r, d.Store)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterMapRoutes(r, d.Store, mapview.Center{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon}, d.Log)

	api := r.Group("/api")
	handlers.RegisterAuthRoutes(api, d.Store, d.Log, auth.NewRateLimiter(10, time.Minute).Middleware())
	handlers.RegisterUserRoutes(api, d.Store, d.Store, cfg.UploadDir, d.Log)
	handlers.RegisterEventRoutes(api, d.Store, d.Log)
	handlers.RegisterQuizRoutes(api, d.Store, d.Log)
	handlers.RegisterIcebreakerRoutes(api, d.Icebreakers, auth.NewRateLimiter(5, time.Minute).Middleware())

	// Admin group enforces operator identity via X-API-Key.
	admin := api.Group("/admin")
	admin.Use(auth.APIKeyMiddleware(cfg.APIKeys))
	handlers.RegisterIngestRoutes(admin, d.Ingester, handlers.IngestDefaults{
		Location:  cfg.IngestLocation,
		MaxEvents: cfg.IngestMaxEvents,
		Timeout:   time.Duration(cfg.IngestTimeoutSecs) * time.Second,
	}, d.Log)

	return r
}

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line when it completes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Request failed", fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}

package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/mapview"
)

// RegisterMapRoutes registers GET /map, an HTML page with every event.
func RegisterMapRoutes(r gin.IRoutes, st EventStore, center mapview.Center, log *zap.Logger) {
	r.GET("/map", func(c *gin.Context) {
		events, err := st.ListEvents(c.Request.Context(), nil)
		if err != nil {
			log.Error("Failed to list events for map", zap.Error(err))
			c.String(http.StatusInternalServerError, "map unavailable")
			return
		}

		var buf bytes.Buffer
		if err := mapview.Render(&buf, center, events); err != nil {
			log.Error("Failed to render map", zap.Error(err))
			c.String(http.StatusInternalServerError, "map unavailable")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	})
}

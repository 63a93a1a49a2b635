package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/catalog"
	"github.com/PratikDhanave/vibe-events/internal/metrics"
	"github.com/PratikDhanave/vibe-events/internal/models"
	"github.com/PratikDhanave/vibe-events/internal/store"
)

// RegisterEventRoutes registers catalog endpoints.
//
// GET  /events?mood=... - all events, or those matching a known mood
// POST /events          - create an event; category is classified when omitted
// POST /interested      - increments popularity and logs the action
func RegisterEventRoutes(r gin.IRoutes, st EventStore, log *zap.Logger) {
	r.GET("/events", func(c *gin.Context) {
		var categories []string
		if set, ok := catalog.CategoriesFor(c.Query("mood")); ok {
			categories = set.Strings()
		}

		events, err := st.ListEvents(c.Request.Context(), categories)
		if err != nil {
			log.Error("Failed to list events", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		c.JSON(http.StatusOK, events)
	})

	r.POST("/events", func(c *gin.Context) {
		var req models.CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		e, ok := eventFromRequest(req)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}

		id, err := st.InsertEvent(c.Request.Context(), e)
		if errors.Is(err, store.ErrUnknownUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown user"})
			return
		}
		if err != nil {
			log.Error("Failed to create event", zap.String("title", e.Title), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}
		e.ID = id

		log.Info("Event created", zap.Int64("event_id", id), zap.String("category", e.Category))
		c.JSON(http.StatusCreated, e)
	})

	r.POST("/interested", func(c *gin.Context) {
		var req models.InterestRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.EventID == 0 || req.UserID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
			return
		}

		popularity, err := st.MarkInterested(c.Request.Context(), req.EventID, req.UserID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if err != nil {
			log.Error("Failed to mark interest",
				zap.Int64("event_id", req.EventID),
				zap.Int64("user_id", req.UserID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}

		metrics.InterestsMarked.Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true, "popularity": popularity})
	})
}

// eventFromRequest applies defaults. It fails only on a category outside the taxonomy.
func eventFromRequest(req models.CreateEventRequest) (models.Event, bool) {
	e := models.Event{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		LocationName: strings.TrimSpace(req.LocationName),
		EventTime:    strings.TrimSpace(req.EventTime),
		Latitude:     catalog.DefaultLatitude,
		Longitude:    catalog.DefaultLongitude,
		CreatedBy:    req.UserID,
	}
	if req.Latitude != nil {
		e.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		e.Longitude = *req.Longitude
	}
	if e.Description == "" {
		e.Description = catalog.NoDescription
	}
	if e.LocationName == "" {
		e.LocationName = catalog.UnknownVenue
	}

	category := catalog.Category(strings.ToLower(strings.TrimSpace(req.Category)))
	switch {
	case category == "":
		category = catalog.Classify("", e.Title)
	case !category.Valid():
		return models.Event{}, false
	}
	e.Category = string(category)
	return e, true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// RegisterIcebreakerRoutes registers POST /icebreaker. The response is always
// 200 with text; generation failures fall back to canned suggestions.
func RegisterIcebreakerRoutes(r gin.IRoutes, gen IcebreakerGenerator, guards ...gin.HandlerFunc) {
	handler := func(c *gin.Context) {
		var req models.IcebreakerRequest
		// An empty or unreadable body means "no interest given".
		if err := c.ShouldBindJSON(&req); err != nil {
			req = models.IcebreakerRequest{}
		}

		text, _ := gen.Generate(c.Request.Context(), req.Interest)
		c.JSON(http.StatusOK, gin.H{"icebreaker": text})
	}
	r.POST("/icebreaker", append(guards, handler)...)
}

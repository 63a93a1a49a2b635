package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// QuizQuestions is the fixed preference quiz.
var QuizQuestions = []models.QuizQuestion{
	{ID: 1, Question: "Pick your vibe today", Options: []string{"Calm", "Energetic", "Anxious"}},
	{ID: 2, Question: "Choose a music genre you like", Options: []string{"Lo-fi", "Indie", "Electronic", "Classical"}},
	{ID: 3, Question: "Do you prefer small meetups or big events?", Options: []string{"Small", "Big"}},
	{ID: 4, Question: "Favorite time of day to hang out?", Options: []string{"Morning", "Afternoon", "Night"}},
}

// RegisterQuizRoutes registers the preference quiz.
//
// GET  /quiz/questions
// POST /quiz/answer - user_id, question, answer required
// POST /quiz/done
func RegisterQuizRoutes(r gin.IRoutes, st ActivityStore, log *zap.Logger) {
	r.GET("/quiz/questions", func(c *gin.Context) {
		c.JSON(http.StatusOK, QuizQuestions)
	})

	r.POST("/quiz/answer", func(c *gin.Context) {
		var req models.QuizAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		question := strings.TrimSpace(req.Question)
		answer := strings.TrimSpace(req.Answer)
		if req.UserID == 0 || question == "" || answer == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}

		if err := st.SaveQuizAnswer(c.Request.Context(), req.UserID, question, answer); err != nil {
			log.Error("Failed to save quiz answer", zap.Int64("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	r.POST("/quiz/done", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "finished"})
	})
}

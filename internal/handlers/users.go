package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/models"
	"github.com/PratikDhanave/vibe-events/internal/store"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 5 << 20

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// RegisterUserRoutes registers profile endpoints.
//
// GET   /user/:id
// PATCH /user/update    - partial update, only supplied fields change
// POST  /profile/upload - multipart user_id + profile_image, stored under uploadDir
// POST  /preferences    - replaces the user's preferred categories
func RegisterUserRoutes(r gin.IRoutes, users UserStore, activity ActivityStore, uploadDir string, log *zap.Logger) {
	r.GET("/user/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		u, err := users.GetUser(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			log.Error("Failed to load user", zap.Int64("user_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		c.JSON(http.StatusOK, u)
	})

	r.PATCH("/user/update", func(c *gin.Context) {
		var req models.ProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := users.UpdateProfile(c.Request.Context(), req)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			log.Error("Failed to update profile", zap.Int64("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	r.POST("/profile/upload", func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.PostForm("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}
		file, err := c.FormFile("profile_image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if file.Size > maxImageBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}
		ext := strings.ToLower(filepath.Ext(filepath.Base(file.Filename)))
		if !imageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		if _, err := users.GetUser(c.Request.Context(), userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Error("Failed to load user", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Error("Failed to create upload dir", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		path := filepath.Join(uploadDir, fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext))
		if err := c.SaveUploadedFile(file, path); err != nil {
			log.Error("Failed to save upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		if err := users.SetProfileImage(c.Request.Context(), userID, path); err != nil {
			_ = os.Remove(path)
			log.Error("Failed to store profile image", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "profile_image": path})
	})

	r.POST("/preferences", func(c *gin.Context) {
		var req models.PreferencesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}

		categories := make([]string, 0, len(req.Categories))
		for _, cat := range req.Categories {
			if cat = strings.ToLower(strings.TrimSpace(cat)); cat != "" {
				categories = append(categories, cat)
			}
		}

		if err := activity.ReplacePreferences(c.Request.Context(), req.UserID, categories); err != nil {
			log.Error("Failed to save preferences", zap.Int64("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
}

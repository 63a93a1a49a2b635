package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/auth"
	"github.com/PratikDhanave/vibe-events/internal/models"
	"github.com/PratikDhanave/vibe-events/internal/store"
)

// RegisterAuthRoutes registers account endpoints.
//
// POST /register - email, password, name required; duplicate email → 400
// POST /login    - 401 on unknown email or wrong password
//
// Extra handlers (for example a rate limiter) run before login.
func RegisterAuthRoutes(r gin.IRoutes, st UserStore, log *zap.Logger, loginGuards ...gin.HandlerFunc) {
	r.POST("/register", func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if errors.Is(err, auth.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password too long"})
			return
		}
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		id, err := st.CreateUser(c.Request.Context(), email, hash, strings.TrimSpace(req.Name))
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		if err != nil {
			log.Error("Failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		log.Info("User registered", zap.Int64("user_id", id))
		c.JSON(http.StatusOK, models.AuthResponse{Status: "success", UserID: id})
	})

	login := func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		u, err := st.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("Failed to load user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{Status: "success", UserID: u.ID})
	}
	r.POST("/login", append(loginGuards, login)...)
}

// validEmail runs gin's validator on the normalized address.
func validEmail(email string) bool {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return email != ""
	}
	return v.Var(email, "required,email") == nil
}

package models

import "time"

// User is a registered account plus its editable profile.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Age          *int      `json:"age"`
	Gender       *string   `json:"gender"`
	DOB          *string   `json:"dob"`
	Bio          *string   `json:"bio"`
	SocialLinks  *string   `json:"social_links"`
	City         *string   `json:"city"`
	Interests    *string   `json:"interests"`
	Latitude     *float64  `json:"lat"`
	Longitude    *float64  `json:"lon"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"-"`
}

// RegisterRequest is the POST /api/register payload.
// Email format and password length are checked after normalization.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,max=120"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,max=100"`
}

// LoginRequest is the POST /api/login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Status string `json:"status"`
	UserID int64  `json:"user_id"`
}

// ProfileUpdate is the PATCH /api/user/update payload.
// Only non-nil fields are written.
type ProfileUpdate struct {
	UserID      int64    `json:"user_id" binding:"required"`
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Age         *int     `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender      *string  `json:"gender" binding:"omitempty,max=20"`
	DOB         *string  `json:"dob" binding:"omitempty,max=20"`
	Bio         *string  `json:"bio"`
	SocialLinks *string  `json:"social_links"`
	City        *string  `json:"city" binding:"omitempty,max=100"`
	Interests   *string  `json:"interests"`
	Latitude    *float64 `json:"lat" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"lon" binding:"omitempty,longitude"`
}

// PreferencesRequest replaces a user's preferred categories.
type PreferencesRequest struct {
	UserID     int64    `json:"user_id" binding:"required"`
	Categories []string `json:"categories"`
}

// QuizQuestion is one entry of the static preference quiz.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizAnswerRequest is the POST /api/quiz/answer payload.
type QuizAnswerRequest struct {
	UserID   int64  `json:"user_id"`
	Question string `json:"question" binding:"max=500"`
	Answer   string `json:"answer" binding:"max=200"`
}

// IcebreakerRequest is the POST /api/icebreaker payload.
type IcebreakerRequest struct {
	Interest string `json:"interest" binding:"max=200"`
}

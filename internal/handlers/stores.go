package handlers

import (
	"context"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// EventStore is the catalog as seen by the HTTP layer.
type EventStore interface {
	ListEvents(ctx context.Context, categories []string) ([]models.Event, error)
	InsertEvent(ctx context.Context, e models.Event) (int64, error)
	MarkInterested(ctx context.Context, eventID, userID int64) (int, error)
}

// UserStore persists accounts and profiles.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateProfile(ctx context.Context, u models.ProfileUpdate) error
	SetProfileImage(ctx context.Context, userID int64, path string) error
}

// ActivityStore persists preferences and quiz answers.
type ActivityStore interface {
	ReplacePreferences(ctx context.Context, userID int64, categories []string) error
	SaveQuizAnswer(ctx context.Context, userID int64, question, answer string) error
}

// Ingester runs one ingestion pass.
type Ingester interface {
	Ingest(ctx context.Context, location string, maxEvents int) (int, error)
}

// IcebreakerGenerator produces icebreaker text and reports whether the AI answered.
type IcebreakerGenerator interface {
	Generate(ctx context.Context, interest string) (string, bool)
}

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/PratikDhanave/vibe-events/internal/models"
)

// CreateUser inserts a user and returns its id, or ErrEmailTaken.
func (p *PostgresStore) CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users(email, password_hash, name)
		VALUES ($1,$2,$3)
		RETURNING id
	`, email, passwordHash, name).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrEmailTaken
	}
	return id, err
}

const userColumns = `id, email, COALESCE(password_hash, ''), COALESCE(name, ''), age, gender, dob, bio,
	social_links, city, interests, lat, lon, profile_image, created_at`

func (p *PostgresStore) scanUser(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Gender, &u.DOB, &u.Bio,
		&u.SocialLinks, &u.City, &u.Interests, &u.Latitude, &u.Longitude, &u.ProfileImage, &u.CreatedAt,
	)
	return u, notFound(err)
}

// GetUser returns the user with id, or ErrNotFound.
func (p *PostgresStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	return p.scanUser(ctx, "id = $1", id)
}

// GetUserByEmail returns the user with email, or ErrNotFound.
func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return p.scanUser(ctx, "email = $1", email)
}

// UpdateProfile writes the non-nil fields of u.
func (p *PostgresStore) UpdateProfile(ctx context.Context, u models.ProfileUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Age != nil {
		add("age", *u.Age)
	}
	if u.Gender != nil {
		add("gender", *u.Gender)
	}
	if u.DOB != nil {
		add("dob", *u.DOB)
	}
	if u.Bio != nil {
		add("bio", *u.Bio)
	}
	if u.SocialLinks != nil {
		add("social_links", *u.SocialLinks)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if u.Interests != nil {
		add("interests", *u.Interests)
	}
	if u.Latitude != nil {
		add("lat", *u.Latitude)
	}
	if u.Longitude != nil {
		add("lon", *u.Longitude)
	}

	if len(sets) == 0 {
		// Still report a missing user.
		_, err := p.GetUser(ctx, u.UserID)
		return err
	}

	args = append(args, u.UserID)
	tag, err := p.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProfileImage stores the path of a user's uploaded image.
func (p *PostgresStore) SetProfileImage(ctx context.Context, userID int64, path string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET profile_image = $1 WHERE id = $2`, path, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

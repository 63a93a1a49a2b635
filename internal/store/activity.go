package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ReplacePreferences swaps a user's preferred categories for categories.
func (p *PostgresStore) ReplacePreferences(ctx context.Context, userID int64, categories []string) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, c := range categories {
			if _, err := tx.Exec(ctx, `
				INSERT INTO user_preferences(user_id, category) VALUES ($1,$2)
				ON CONFLICT DO NOTHING
			`, userID, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveQuizAnswer appends one quiz answer.
func (p *PostgresStore) SaveQuizAnswer(ctx context.Context, userID int64, question, answer string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO quiz_answers(user_id, question, answer) VALUES ($1,$2,$3)
	`, userID, question, answer)
	return err
}

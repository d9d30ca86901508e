package repositories

import (
	"context"
	"time"

	"tech-shop/config"
	"tech-shop/models"
)

type ResetTokenRepository struct{}

func NewResetTokenRepository() *ResetTokenRepository {
	return &ResetTokenRepository{}
}

// Create stores a reset code for the user, replacing any outstanding ones.
func (r *ResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM password_reset_tokens WHERE user_id = $1", token.UserID); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO password_reset_tokens (user_id, token, expires_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ResetTokenRepository) Find(ctx context.Context, userID int, token string) (*models.PasswordResetToken, error) {
	t := &models.PasswordResetToken{}
	err := config.DB.QueryRow(ctx,
		"SELECT id, user_id, token, expires_at FROM password_reset_tokens WHERE user_id = $1 AND token = $2",
		userID, token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ResetTokenRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, "DELETE FROM password_reset_tokens WHERE id = $1", id)
	return err
}

// DeleteExpired is housekeeping for codes that were never used.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context) error {
	_, err := config.DB.Exec(ctx, "DELETE FROM password_reset_tokens WHERE expires_at < $1", time.Now())
	return err
}

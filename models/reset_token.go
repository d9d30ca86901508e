package models

import "time"

// PasswordResetToken is a one-time reset code tied to a user.
// Tokens expire 10 minutes after creation and are deleted on use.
type PasswordResetToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

package entity

import "time"

// PasswordResetToken is a single-use token emailed to a user who asked
// for a password reset. It is deleted upon successful password change.
type PasswordResetToken struct {
	Token     string    `bson:"_id"`        // random UUID, unique key
	Email     string    `bson:"email"`      // owning user's email (lower-cased)
	ExpiresAt time.Time `bson:"expires_at"` // issuance + 1 hour
}

// IsExpired returns true if the token has passed its expiration time.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

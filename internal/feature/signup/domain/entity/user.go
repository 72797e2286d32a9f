// Package entity defines the domain entities for the signup feature.
package entity

import "time"

// Role identifies the account type of a user.
type Role string

const (
	// RoleStudent is the default role for self-registered accounts.
	RoleStudent Role = "student"
	// RoleAdmin marks staff accounts.
	RoleAdmin Role = "admin"
)

// Valid returns true if the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User represents a durably registered account.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	ID string `bson:"_id"`

	// Name is the display name supplied at registration.
	Name string `bson:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lower-cased.
	Email string `bson:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never store plaintext passwords.
	PasswordHash string `bson:"password"`

	// Role is the account type, taken from the pending registration.
	Role Role `bson:"role"`

	// Verified is true once email ownership was proven via OTP.
	Verified bool `bson:"verified"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `bson:"created_at"`

	// LastLoginAt is the timestamp of the most recent successful login.
	LastLoginAt *time.Time `bson:"last_login,omitempty"`
}

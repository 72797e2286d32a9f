package usecase

import (
	"context"

	"campus_backend/internal/feature/signup/domain/entity"
)

// Store abstracts the persistence layer for the signup feature.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
//
// Two implementations exist (MongoDB and in-memory); a switching adapter
// routes every call to whichever backend is currently reachable. The
// usecase never knows which one is active.
type Store interface {
	// UpsertPending creates or overwrites the pending registration keyed
	// by its email. Overwriting invalidates any previously issued OTP.
	UpsertPending(ctx context.Context, p *entity.PendingRegistration) error

	// FindPending retrieves the pending registration for an email.
	// Returns domain.ErrOTPNotFound if none exists.
	FindPending(ctx context.Context, email string) (*entity.PendingRegistration, error)

	// DeletePending removes the pending registration for an email.
	// Deleting a missing entry is not an error.
	DeletePending(ctx context.Context, email string) error

	// CreateUser persists a new user. Returns domain.ErrUserAlreadyExists
	// if a user with the same email exists; the check-and-insert must be
	// atomic (unique index on Mongo, mutex on the in-memory backend).
	CreateUser(ctx context.Context, u *entity.User) error

	// FindUserByEmail retrieves a user by email.
	// Returns domain.ErrUserNotFound if none exists.
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateUser overwrites the stored user identified by u.Email.
	UpdateUser(ctx context.Context, u *entity.User) error

	// CreateResetToken persists a password reset token.
	CreateResetToken(ctx context.Context, t *entity.PasswordResetToken) error

	// FindByResetToken retrieves a reset token by its value.
	// Returns domain.ErrResetTokenInvalid if none exists.
	FindByResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// DeleteResetToken removes a reset token after use or expiry.
	DeleteResetToken(ctx context.Context, token string) error
}

// Package domain defines domain-level errors for the signup feature.
package domain

import "errors"

// Domain errors for the pending-registration lifecycle and login.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrInvalidEmail indicates that the supplied address does not look like an email.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrUserAlreadyExists indicates that a user with the given email already exists.
	// Returned by RequestOTP and CompleteRegistration for duplicate emails.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrOTPNotFound indicates that no pending registration exists for the email.
	ErrOTPNotFound = errors.New("otp not found or expired")

	// ErrOTPExpired indicates the OTP was presented after its expiry window.
	// The pending registration is deleted as a side effect.
	ErrOTPExpired = errors.New("otp has expired")

	// ErrOTPMismatch indicates the presented code differs from the stored one.
	// The pending registration is preserved so the user may retry.
	ErrOTPMismatch = errors.New("invalid otp")

	// ErrTooManyAttempts indicates the failed-verify allowance is exhausted.
	// The pending registration is deleted; a fresh OTP must be requested.
	ErrTooManyAttempts = errors.New("too many failed otp attempts")

	// ErrEmailNotVerified indicates registration was attempted before a
	// successful OTP verification for the email.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrInvalidPassword indicates the password hash comparison failed.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrRoleMismatch indicates the login requested a role the user does not hold.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrResetTokenInvalid indicates the reset token is unknown or expired.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")

	// Validation errors for CompleteRegistration / CompletePasswordReset,
	// checked in this order.
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

package entity

import "time"

// MaxOTPAttempts is the number of wrong codes tolerated before the
// pending registration is discarded and a fresh OTP must be requested.
const MaxOTPAttempts = 5

// PendingRegistration is a provisional record tracking an in-progress
// signup before the account is durably created. It is keyed by the
// lower-cased email address.
type PendingRegistration struct {
	Email        string    `bson:"_id"`         // unique key
	OTP          string    `bson:"otp"`         // 6-digit numeric code
	OTPExpiresAt time.Time `bson:"otp_expires"` // issuance + 10 minutes
	Verified     bool      `bson:"verified"`    // set by a successful verify
	Role         Role      `bson:"role"`        // authoritative at registration
	Attempts     int       `bson:"attempts"`    // consecutive failed verifies
}

// IsExpired returns true if the OTP has passed its expiration time.
func (p *PendingRegistration) IsExpired(now time.Time) bool {
	return now.After(p.OTPExpiresAt)
}

// AttemptsExhausted returns true once the failed-verify allowance is used up.
func (p *PendingRegistration) AttemptsExhausted() bool {
	return p.Attempts >= MaxOTPAttempts
}

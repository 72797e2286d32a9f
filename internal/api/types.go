// Package api defines the shared JSON response types for the HTTP surface.
// Every endpoint answers with the {success, message, ...} envelope.
package api

// Response is the plain acknowledgment envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserPayload carries the public fields of a user. The password hash is
// never part of any response.
type UserPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Verified  bool   `json:"verified,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// UserResponse is the envelope for endpoints that return a user.
type UserResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    UserPayload `json:"user"`
}

// LoginResponse extends UserResponse with the issued access token.
type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token,omitempty"`
}

// HealthResponse reports liveness and which storage backend is active.
type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	Database          string `json:"database"`
	Users             any    `json:"users"`
	ActiveOTPs        any    `json:"activeOTPs"`
	ActiveResetTokens any    `json:"activeResetTokens"`
}

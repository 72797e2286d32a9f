package dto

// ForgotPasswordReq represents the request body for the /api/forgot-password endpoint.
type ForgotPasswordReq struct {
	Email string `json:"email"`
}

// ResetPasswordReq represents the request body for the /api/reset-password endpoint.
type ResetPasswordReq struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

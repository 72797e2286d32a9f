package dto

// VerifyOTPReq は/api/verify-otpエンドポイントのリクエストボディを表します。
type VerifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

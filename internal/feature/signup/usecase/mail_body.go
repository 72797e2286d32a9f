package usecase

import "fmt"

// otpMailBody はOTP通知メールのHTML本文を組み立てます。
func otpMailBody(otp string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Email Verification</h2>
  <p>Thank you for signing up for the Student Management System.
  Please use the following OTP to verify your identity:</p>
  <div style="border: 2px solid #7b61ff; border-radius: 8px; padding: 20px; text-align: center;">
    <h1 style="letter-spacing: 3px;">%s</h1>
  </div>
  <p><strong>Important:</strong> This OTP will expire in <strong>10 minutes</strong>.</p>
  <p>If you didn't request this verification, please ignore this email.</p>
</div>`, otp)
}

// resetMailBody はパスワードリセットメールのHTML本文を組み立てます。
func resetMailBody(link string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset Request</h2>
  <p>You requested to reset your password for your Student Management System account.
  Click the link below to reset your password:</p>
  <p><a href="%s">Reset My Password</a></p>
  <p><strong>Important:</strong> This link will expire in <strong>1 hour</strong>.</p>
  <p>If you didn't request this password reset, please ignore this email.
  Your password will remain unchanged.</p>
</div>`, link)
}

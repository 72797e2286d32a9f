package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpDigits は発行するワンタイムパスワードの桁数です。
const otpDigits = 6

// generateOTP は暗号学的に安全な乱数源から6桁の数字コードを生成します。
// 先頭のゼロは保持されます（"012345" など）。
func generateOTP() (string, error) {
	max := big.NewInt(1000000) // 10^otpDigits
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

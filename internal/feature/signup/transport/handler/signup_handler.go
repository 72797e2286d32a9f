// Package handler はsignupフィーチャーのHTTPハンドラーを提供します。
// ドメインエラーを{success, message, ...}のエンベロープにマップします。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus_backend/internal/api"
	"campus_backend/internal/feature/signup/domain"
	"campus_backend/internal/feature/signup/domain/entity"
	"campus_backend/internal/feature/signup/transport/http/dto"
)

// SignupUsecase は保留中登録ライフサイクルと認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type SignupUsecase interface {
	RequestOTP(ctx context.Context, email string, role entity.Role) error
	VerifyOTP(ctx context.Context, email, otp string) error
	CompleteRegistration(ctx context.Context, name, email, password, confirmPassword string, role entity.Role) (*entity.User, error)
	Login(ctx context.Context, email, password string, role entity.Role) (*entity.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, token, newPassword, confirmPassword string) error
	GetUser(ctx context.Context, email string) (*entity.User, error)
}

// SignupHandler は認証系エンドポイントのHTTPリクエストを処理します。
type SignupHandler struct {
	signup SignupUsecase
}

// NewSignupHandler はSignupHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からSignupUsecaseを注入します。
func NewSignupHandler(signup SignupUsecase) *SignupHandler {
	return &SignupHandler{signup: signup}
}

// fail は失敗エンベロープを書き出します。
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, api.Response{Success: false, Message: message})
}

// domainStatus はドメインエラーをHTTPステータスとユーザー向けメッセージにマップします。
// 未知のエラーは一律500 "Server error occurred" に落とします。
func domainStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email address"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrOTPNotFound):
		return http.StatusBadRequest, "OTP not found or expired"
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, "OTP has expired"
	case errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusBadRequest, "Invalid OTP"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusBadRequest, "Too many failed attempts. Please request a new OTP"
	case errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusBadRequest, "Email not verified"
	case errors.Is(err, domain.ErrFieldsRequired):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match"
	case errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest, "Password must be at least 6 characters"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "User not found"
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, "Invalid password"
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusBadRequest, "Invalid or expired reset token"
	default:
		return http.StatusInternalServerError, "Server error occurred"
	}
}

// userPayload はエンティティをレスポンス用の公開フィールドに変換します。
// パスワードハッシュは決して含めません。
func userPayload(u *entity.User) api.UserPayload {
	return api.UserPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// SendOTP は POST /api/send-otp を処理します。
// - メールアドレスの構文エラー、登録済みユーザーは400
// - 成功時はOTPをメール送信して200
func (h *SignupHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	if err := h.signup.RequestOTP(c.Request.Context(), req.Email, entity.Role(req.Role)); err != nil {
		status, msg := domainStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("send otp failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("send otp rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		}
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.Response{Success: true, Message: "OTP sent successfully to your email"})
}

// VerifyOTP は POST /api/verify-otp を処理します。
// 不一致と期限切れは区別してクライアントに返します。
func (h *SignupHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.OTP == "" {
		fail(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	if err := h.signup.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		status, msg := domainStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("verify otp failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("verify otp rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		}
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.Response{Success: true, Message: "Email verified successfully"})
}

// Register は POST /api/register を処理します。
// 成功時は作成されたユーザーの公開フィールドを返します。
func (h *SignupHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.signup.CompleteRegistration(c.Request.Context(),
		req.Name, req.Email, req.Password, req.ConfirmPassword, entity.Role(req.Role))
	if err != nil {
		status, msg := domainStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("registration failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("registration rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		}
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.UserResponse{
		Success: true,
		Message: "Registration completed successfully",
		User:    userPayload(user),
	})
}

// Login は POST /api/login を処理します。
// 成功時はユーザーの公開フィールドとアクセストークンを返します。
func (h *SignupHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.signup.Login(c.Request.Context(), req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		if errors.Is(err, domain.ErrRoleMismatch) {
			slog.Warn("login role mismatch", "email", req.Email, "requested_role", req.Role, "remote_addr", c.ClientIP())
			fail(c, http.StatusBadRequest, fmt.Sprintf("Access denied. This is for %ss only.", req.Role))
			return
		}
		status, msg := domainStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("login rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		}
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    userPayload(user),
		Token:   token,
	})
}

// ForgotPassword は POST /api/forgot-password を処理します。
// アカウント列挙を防ぐため、メールアドレスの登録有無に関わらず
// 同一のレスポンスを返します。
func (h *SignupHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.signup.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		status, msg := domainStatus(err)
		slog.Error("forgot password failed", "error", err, "remote_addr", c.ClientIP())
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.Response{Success: true, Message: "If the email exists, a reset link has been sent"})
}

// ResetPassword は POST /api/reset-password を処理します。
func (h *SignupHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if err := h.signup.CompletePasswordReset(c.Request.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		status, msg := domainStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("reset password failed", "error", err, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("reset password rejected", "error", err, "remote_addr", c.ClientIP())
		}
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, api.Response{Success: true, Message: "Password reset successfully"})
}

// GetUser は GET /api/user/:email を処理します（要認証）。
// ダッシュボード表示用にユーザーの公開フィールドを返します。
func (h *SignupHandler) GetUser(c *gin.Context) {
	email := c.Param("email")

	user, err := h.signup.GetUser(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("get user failed", "error", err, "remote_addr", c.ClientIP())
		fail(c, http.StatusInternalServerError, "Server error occurred")
		return
	}

	payload := userPayload(user)
	payload.Verified = user.Verified
	payload.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	if user.LastLoginAt != nil {
		payload.LastLogin = user.LastLoginAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, api.UserResponse{Success: true, User: payload})
}

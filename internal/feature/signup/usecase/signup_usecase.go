// Package usecase はsignupフィーチャーのビジネスロジックを実装します。
// 保留中登録のライフサイクル（OTP発行 → 検証 → 本登録）と、ログインおよび
// パスワードリセットのフローを所有します。
package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campus_backend/internal/feature/signup/domain"
	"campus_backend/internal/feature/signup/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6

	// bcryptCost はパスワードハッシュのワークファクターです。
	bcryptCost = 12

	// otpTTL はOTPの有効期間です。
	otpTTL = 10 * time.Minute

	// resetTokenTTL はパスワードリセットトークンの有効期間です。
	resetTokenTTL = time.Hour
)

// emailPattern は基本的なメールアドレスの構文チェックです。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID, email, role string) (string, error)
}

// SignupUsecase は保留中登録のライフサイクルと認証フローを実装します。
// ストレージバックエンドの切り替えはStore実装側の責務であり、この層は
// 常に「現在のバックエンド」に対して操作します。
type SignupUsecase struct {
	store  Store
	mail   MailSender
	tokens TokenGenerator

	// resetURLBase はリセットリンクの生成に使用されます。
	resetURLBase string

	// now はテストで時刻を固定できるように差し替え可能にしています。
	now func() time.Time
}

// NewSignupUsecase はSignupUsecaseの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewSignupUsecase(store Store, mail MailSender, tokens TokenGenerator, resetURLBase string) *SignupUsecase {
	return &SignupUsecase{
		store:        store,
		mail:         mail,
		tokens:       tokens,
		resetURLBase: resetURLBase,
		now:          time.Now,
	}
}

// normalizeEmail はメールアドレスをキーとして使える形に正規化します。
// 大文字小文字を区別しないため小文字に揃えます。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeRole は不正または未指定のロールをデフォルト（student）に揃えます。
func normalizeRole(role entity.Role) entity.Role {
	if !role.Valid() {
		return entity.RoleStudent
	}
	return role
}

// RequestOTP は新規登録用のOTPを発行し、保留中登録をupsertして
// メールで送信します。既存の保留中OTPは無条件に上書きされます
// （再送は直前のコードを無効化します）。
//
// メール送信の失敗はリクエスト失敗にしません。OTPを運用ログに出力して
// 成功として扱います（メール基盤が無い開発環境でもフローを止めないため）。
func (u *SignupUsecase) RequestOTP(ctx context.Context, email string, role entity.Role) error {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}

	// 既に本登録済みのメールアドレスにはOTPを発行しない
	if _, err := u.store.FindUserByEmail(ctx, email); err == nil {
		return domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	pending := &entity.PendingRegistration{
		Email:        email,
		OTP:          otp,
		OTPExpiresAt: u.now().Add(otpTTL),
		Role:         normalizeRole(role),
	}
	if err := u.store.UpsertPending(ctx, pending); err != nil {
		return fmt.Errorf("failed to upsert pending registration: %w", err)
	}

	subject := "Email Verification - Student Management System"
	body := otpMailBody(otp)
	if err := u.mail.Send(ctx, email, subject, body); err != nil {
		// 開発用フォールバック: OTPを運用ログに出して成功として扱う
		slog.Warn("otp mail dispatch failed, falling back to log",
			"error", err, "email", email, "otp", otp)
	}

	return nil
}

// VerifyOTP は提示されたコードを保留中登録と照合します。
//
//   - 保留中登録が無い場合はErrOTPNotFound
//   - 期限切れの場合はエントリを削除してErrOTPExpired（再発行が必要）
//   - 不一致の場合はエントリを保持して試行回数を加算し、ErrOTPMismatch。
//     試行回数が上限に達したらエントリを削除してErrTooManyAttempts
//   - 一致した場合はverified=trueで保存する。エントリは本登録ステップの
//     ために残す（削除しない）。検証済みエントリへの再検証は冪等に成功する
func (u *SignupUsecase) VerifyOTP(ctx context.Context, email, otp string) error {
	email = normalizeEmail(email)

	pending, err := u.store.FindPending(ctx, email)
	if err != nil {
		return err
	}

	if pending.IsExpired(u.now()) {
		if err := u.store.DeletePending(ctx, email); err != nil {
			slog.Warn("failed to delete expired pending registration", "error", err, "email", email)
		}
		return domain.ErrOTPExpired
	}

	// タイミング攻撃を避けるため定数時間で比較する
	if subtle.ConstantTimeCompare([]byte(pending.OTP), []byte(otp)) != 1 {
		pending.Attempts++
		if pending.AttemptsExhausted() {
			if err := u.store.DeletePending(ctx, email); err != nil {
				slog.Warn("failed to delete pending registration", "error", err, "email", email)
			}
			return domain.ErrTooManyAttempts
		}
		if err := u.store.UpsertPending(ctx, pending); err != nil {
			return fmt.Errorf("failed to record otp attempt: %w", err)
		}
		return domain.ErrOTPMismatch
	}

	pending.Verified = true
	pending.Attempts = 0
	if err := u.store.UpsertPending(ctx, pending); err != nil {
		return fmt.Errorf("failed to mark pending registration verified: %w", err)
	}
	return nil
}

// CompleteRegistration は検証済みの保留中登録を永続的なユーザーに昇格させます。
// ロールは保留中登録のものが優先されます（リクエストと食い違う場合も
// 保留中登録側が正）。成功時に保留中登録は消費（削除）されます。
func (u *SignupUsecase) CompleteRegistration(ctx context.Context, name, email, password, confirmPassword string, role entity.Role) (*entity.User, error) {
	// バリデーションは順序が仕様（最初に失敗したチェックのメッセージを返す）
	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, domain.ErrFieldsRequired
	}
	if password != confirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	email = normalizeEmail(email)

	// 重複チェックは検証チェックより先（2回目の登録はUserAlreadyExists）
	if _, err := u.store.FindUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	pending, err := u.store.FindPending(ctx, email)
	if err != nil {
		if err == domain.ErrOTPNotFound {
			return nil, domain.ErrEmailNotVerified
		}
		return nil, err
	}
	if !pending.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         pending.Role, // 保留中登録のロールが正
		Verified:     true,
		CreatedAt:    u.now(),
	}

	// 重複作成に対する安全網はストア側の一意性制約
	if err := u.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := u.store.DeletePending(ctx, email); err != nil {
		slog.Warn("failed to consume pending registration", "error", err, "email", email)
	}

	slog.Info("user registered", "email", email, "role", user.Role)
	return user, nil
}

// Login はユーザーを認証し、成功時にユーザーと署名済みアクセストークンを返します。
// roleが指定されている場合は保存されたロールと一致しなければなりません。
// 成功時の副作用として最終ログイン時刻を更新します。
func (u *SignupUsecase) Login(ctx context.Context, email, password string, role entity.Role) (*entity.User, string, error) {
	email = normalizeEmail(email)

	user, err := u.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidPassword
	}

	if role != "" && user.Role != role {
		return nil, "", domain.ErrRoleMismatch
	}

	now := u.now()
	user.LastLoginAt = &now
	if err := u.store.UpdateUser(ctx, user); err != nil {
		slog.Warn("failed to update last login", "error", err, "email", email)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("user login successful", "email", email, "role", user.Role)
	return user, token, nil
}

// RequestPasswordReset はリセットトークンを発行してメールで送信します。
// アカウント列挙を防ぐため、メールアドレスが未登録でも成功を返します。
func (u *SignupUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrFieldsRequired
	}

	user, err := u.store.FindUserByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// 未登録でも登録済みと同じ応答を返す（情報漏えい防止）
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token := &entity.PasswordResetToken{
		Token:     uuid.NewString(),
		Email:     user.Email,
		ExpiresAt: u.now().Add(resetTokenTTL),
	}
	if err := u.store.CreateResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	link := u.resetURLBase + "?token=" + token.Token
	subject := "Password Reset - Student Management System"
	if err := u.mail.Send(ctx, email, subject, resetMailBody(link)); err != nil {
		slog.Warn("reset mail dispatch failed, falling back to log",
			"error", err, "email", email, "reset_link", link)
	}

	return nil
}

// CompletePasswordReset はトークンを検証して新しいパスワードを設定します。
// トークンは単回使用で、成功時に削除（無効化）されます。
func (u *SignupUsecase) CompletePasswordReset(ctx context.Context, token, newPassword, confirmPassword string) error {
	if token == "" || newPassword == "" || confirmPassword == "" {
		return domain.ErrFieldsRequired
	}
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	reset, err := u.store.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if reset.IsExpired(u.now()) {
		if err := u.store.DeleteResetToken(ctx, token); err != nil {
			slog.Warn("failed to delete expired reset token", "error", err)
		}
		return domain.ErrResetTokenInvalid
	}

	user, err := u.store.FindUserByEmail(ctx, reset.Email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := u.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := u.store.DeleteResetToken(ctx, token); err != nil {
		slog.Warn("failed to delete used reset token", "error", err)
	}

	slog.Info("password reset completed", "email", reset.Email)
	return nil
}

// GetUser はダッシュボード表示用にユーザーの公開フィールドを取得します。
func (u *SignupUsecase) GetUser(ctx context.Context, email string) (*entity.User, error) {
	return u.store.FindUserByEmail(ctx, normalizeEmail(email))
}

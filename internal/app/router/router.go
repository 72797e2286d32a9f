package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	signuphandler "campus_backend/internal/feature/signup/transport/handler"
	platformhandler "campus_backend/internal/platform/http/handler"
	jwtmw "campus_backend/internal/platform/jwt"
)

// Middlewares groups the rate limiters applied to the auth endpoints.
type Middlewares struct {
	// OTPLimiter throttles OTP issuance and password-reset requests
	// (5 requests / 10 minutes per client).
	OTPLimiter gin.HandlerFunc
	// AuthLimiter throttles login attempts (100 / 15 minutes per client).
	AuthLimiter gin.HandlerFunc
}

func NewRouter(signup *signuphandler.SignupHandler, status platformhandler.StatusFunc, mw Middlewares) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント向けCORS
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:8000",
			"http://localhost:3000",
			"http://localhost:3001",
		},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	api := r.Group("/api")

	// 認証不要
	// 導通確認とバックエンド状態の確認用
	api.GET("/health", platformhandler.Health(status))
	// OTP発行（サインアップ開始）
	api.POST("/send-otp", mw.OTPLimiter, signup.SendOTP)
	// OTP検証
	api.POST("/verify-otp", mw.OTPLimiter, signup.VerifyOTP)
	// 本登録
	api.POST("/register", signup.Register)
	// ログイン（JWT 発行）
	api.POST("/login", mw.AuthLimiter, signup.Login)
	// パスワードリセット
	api.POST("/forgot-password", mw.OTPLimiter, signup.ForgotPassword)
	api.POST("/reset-password", signup.ResetPassword)

	// 認証必須のルート
	auth := api.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/user/:email", signup.GetUser)
	}

	return r
}

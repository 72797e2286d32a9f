package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"campus_backend/internal/app/di"
	"campus_backend/internal/app/router"
	signuphandler "campus_backend/internal/feature/signup/transport/handler"
	signupusecase "campus_backend/internal/feature/signup/usecase"
	"campus_backend/internal/platform/mail"
	platformmongo "campus_backend/internal/platform/mongo"
	jwtmw "campus_backend/internal/platform/jwt"
	infraredis "campus_backend/internal/platform/redis"
	"campus_backend/internal/shared/ratelimiter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using process environment")
	}

	ctx := context.Background()

	// MongoDB（接続できなくてもインメモリで起動を続行する）
	var db *mongodrv.Database
	var client *mongodrv.Client
	if tmp, err := platformmongo.NewClient(ctx); err != nil {
		log.Println("[WARN] MongoDB unavailable. Running with in-memory storage.")
	} else {
		client = tmp
		db = client.Database(platformmongo.DatabaseName())
		defer func() {
			if err := client.Disconnect(ctx); err != nil {
				log.Println("[ERROR] Failed to disconnect MongoDB client:", err)
			}
		}()
	}

	// Redis（レートリミッター共有用、無くても起動する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Using in-process rate limiter.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Store（Mongo + インメモリのフェイルオーバー）
	store, err := di.NewSignupStore(ctx, db)
	if err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}
	if client != nil {
		// 接続監視がバックエンドを切り替える
		go platformmongo.WatchAvailability(ctx, client, store, 10*time.Second)
	}

	// Mail
	sender := mail.NewSMTPSender(mail.ConfigFromEnv())

	// JWT
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokens := jwtmw.NewGenerator(secret, 24*time.Hour)

	// Usecase
	resetURLBase := os.Getenv("RESET_URL_BASE")
	if resetURLBase == "" {
		resetURLBase = "http://localhost:3001/reset-password.html"
	}
	signupUC := signupusecase.NewSignupUsecase(store, sender, tokens, resetURLBase)

	// Handler
	signupH := signuphandler.NewSignupHandler(signupUC)

	// レートリミッター（express-rate-limit時代のウィンドウをそのまま引き継ぐ）
	otpLimiter := ratelimiter.Middleware(
		di.NewLimiter(rdb, "rl:otp", 5, 10*time.Minute),
		"Too many OTP requests, please try again later")
	authLimiter := ratelimiter.Middleware(
		di.NewLimiter(rdb, "rl:auth", 100, 15*time.Minute),
		"Too many login attempts, please try again later")

	// ルータ生成
	r := router.NewRouter(signupH, store.Status, router.Middlewares{
		OTPLimiter:  otpLimiter,
		AuthLimiter: authLimiter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

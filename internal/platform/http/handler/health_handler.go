// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"campus_backend/internal/api"
)

// StatusFunc reports which storage backend is active and, for the
// in-memory backend, how many entries it holds.
// adapters.Failover.Status satisfies this.
type StatusFunc func() (mode string, users, otps, resets any)

// Health returns the handler for the /api/health endpoint.
// It reports liveness plus the active storage backend, so operators can
// see at a glance whether the service is running on MongoDB or on the
// in-memory fallback.
func Health(status StatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		mode, users, otps, resets := status()
		c.JSON(200, api.HealthResponse{
			Status:            "Server is running",
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			Database:          mode,
			Users:             users,
			ActiveOTPs:        otps,
			ActiveResetTokens: resets,
		})
	}
}

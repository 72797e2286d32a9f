package ratelimiter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_backend/internal/api"
)

// Middleware は、クライアントIPをキーにリクエストを制限するGinミドルウェアを返します。
// 上限超過時は429を返します。リミッター自体の障害ではリクエストを
// 落とさず通過させます（可用性優先）。
func Middleware(l Limiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.Response{Success: false, Message: message})
			return
		}
		c.Next()
	}
}

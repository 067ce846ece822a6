package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kakao-auth-service/internal/logger"
)

// GinRequestLog logs one structured line per request with a generated
// request id, method, path, status and duration.
func GinRequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		fields := map[string]any{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond),
		}
		if p, ok := PrincipalFromContext(c.Request.Context()); ok {
			fields["user_id"] = p.UserID
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("http_request", fields)
		case c.Writer.Status() >= 400:
			logger.Warn("http_request", fields)
		default:
			logger.Info("http_request", fields)
		}
	}
}

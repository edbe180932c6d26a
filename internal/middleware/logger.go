package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
)

// LoggerMiddleware 日志中间件
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		}
		if identity := CurrentIdentity(c); !identity.IsAnonymous() {
			fields = append(fields, zap.Int64("user_id", identity.UserID))
		}

		if statusCode >= 500 {
			log.Warn("HTTP 请求", fields...)
			return
		}
		log.Info("HTTP 请求", fields...)
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
	"chirper/pkg/response"
)

// RecoveryMiddleware panic 恢复，记录日志并渲染通用错误页，不向用户暴露细节
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("请求处理发生panic",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		if c.Writer.Written() {
			c.Abort()
			return
		}
		response.HTML(c, response.CodeInternalServerError, "error.html", gin.H{
			"Title":       "Error",
			"CurrentUser": CurrentUser(c),
		})
		c.Abort()
	})
}

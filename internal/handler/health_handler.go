package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
	"chirper/pkg/redis"
	"chirper/pkg/response"
)

type HealthHandler struct {
	db       *sqlx.DB
	sessions redis.SessionManager
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(db *sqlx.DB, sessions redis.SessionManager) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

// Healthz 存活检查，数据库或会话存储不可用时返回 503
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		log.Warn("健康检查失败", zap.String("component", "database"), zap.Error(err))
		response.Error(c, response.CodeServiceUnavailable, "database unavailable")
		return
	}
	if err := h.sessions.Ping(ctx); err != nil {
		log.Warn("健康检查失败", zap.String("component", "sessions"), zap.Error(err))
		response.Error(c, response.CodeServiceUnavailable, "session store unavailable")
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/pkg/db"
	"chirper/pkg/logger"
	"chirper/pkg/redis"
)

func TestMain(m *testing.M) {
	if err := logger.Init(&logger.Config{Level: "fatal", Output: "stdout"}); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	gin.SetMode(gin.TestMode)
	m.Run()
}

// downSessions 模拟不可用的会话存储
type downSessions struct {
	redis.SessionManager
}

func (downSessions) Ping(context.Context) error {
	return errors.New("connection refused")
}

func healthz(h *HealthHandler) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	return w
}

func TestHealthz(t *testing.T) {
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	sessions := redis.NewMemorySessionManager(time.Minute)

	t.Run("全部可用", func(t *testing.T) {
		w := healthz(NewHealthHandler(conn, sessions))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"code":0,"message":"OK","data":{"status":"ok"}}`, w.Body.String())
	})

	t.Run("会话存储不可用", func(t *testing.T) {
		w := healthz(NewHealthHandler(conn, downSessions{sessions}))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "session store unavailable")
	})

	t.Run("数据库已关闭", func(t *testing.T) {
		closed, err := db.Open("sqlite", ":memory:")
		require.NoError(t, err)
		require.NoError(t, closed.Close())

		w := healthz(NewHealthHandler(closed, sessions))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "database unavailable")
	})
}

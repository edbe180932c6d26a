package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chirper/internal/dto"
	"chirper/internal/service"
	log "chirper/pkg/logger"
)

const (
	identityKey = "auth.identity"
	userKey     = "auth.user"
	tokenKey    = "auth.token"

	// LoginPath 未登录访问受保护页面时的跳转目标
	LoginPath = "/login"

	sessionLookupTimeout = 2 * time.Second
)

// SessionMiddleware 解析会话 cookie，将当前身份放入 gin.Context；不拦截匿名请求
func SessionMiddleware(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		if token == "" {
			c.Next()
			return
		}
		c.Set(tokenKey, token)

		ctx, cancel := context.WithTimeout(c.Request.Context(), sessionLookupTimeout)
		defer cancel()

		identity, ok := auth.CurrentIdentity(ctx, token)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.GetUser(ctx, identity.UserID)
		if err != nil {
			// 会话指向的用户已不存在或查询失败，按匿名处理
			if !errors.Is(err, service.ErrNotFound) {
				log.Error("加载当前用户失败", zap.Error(err), zap.Int64("user_id", identity.UserID))
			}
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAuth 未登录时跳转到登录页
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAnonymous() {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity 当前请求的身份，未登录时为零值
func CurrentIdentity(c *gin.Context) service.Identity {
	if v, ok := c.Get(identityKey); ok {
		return v.(service.Identity)
	}
	return service.Identity{}
}

// CurrentUser 当前登录用户，未登录时为 nil
func CurrentUser(c *gin.Context) *dto.UserDTO {
	if v, ok := c.Get(userKey); ok {
		return v.(*dto.UserDTO)
	}
	return nil
}

// SessionToken 请求携带的会话 token
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

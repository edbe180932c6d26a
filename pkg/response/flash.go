package response

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
)

const (
	// FlashSessionName flash 提示所在的签名 cookie
	FlashSessionName = "chirper_flash"

	flashContextKey = "response.flashes"

	FlashSuccess = "success"
	FlashError   = "error"
)

// flashCategories 跨请求提示的展示顺序
var flashCategories = []string{FlashSuccess, FlashError}

// Flash 一次性提示
type Flash struct {
	Category string
	Message  string
}

// NewFlashStore 创建 HMAC 签名的 cookie 存储，secure 对应 server.cookie_secure
func NewFlashStore(secret []byte, secure bool) sessions.Store {
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// FlashMiddleware 为每个请求挂载 flash session
func FlashMiddleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(FlashSessionName, store)
}

// SetFlash 为下一次页面渲染保存提示（配合重定向使用）
func SetFlash(c *gin.Context, category, message string) {
	session := flashSession(c)
	if session == nil {
		log.Warn("未挂载 flash session，提示改为仅本次请求展示")
		FlashNow(c, category, message)
		return
	}
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		log.Error("保存 flash 提示失败", zap.Error(err))
	}
}

// FlashNow 提示只在本次请求的渲染中展示
func FlashNow(c *gin.Context, category, message string) {
	var flashes []Flash
	if v, ok := c.Get(flashContextKey); ok {
		flashes = v.([]Flash)
	}
	c.Set(flashContextKey, append(flashes, Flash{Category: category, Message: message}))
}

// TakeFlashes 取出全部待展示提示并清空
func TakeFlashes(c *gin.Context) []Flash {
	var flashes []Flash
	if session := flashSession(c); session != nil {
		for _, category := range flashCategories {
			for _, v := range session.Flashes(category) {
				if message, ok := v.(string); ok {
					flashes = append(flashes, Flash{Category: category, Message: message})
				}
			}
		}
		if len(flashes) > 0 {
			if err := session.Save(); err != nil {
				log.Error("清除 flash 提示失败", zap.Error(err))
			}
		}
	}
	if v, ok := c.Get(flashContextKey); ok {
		flashes = append(flashes, v.([]Flash)...)
		c.Set(flashContextKey, []Flash(nil))
	}
	return flashes
}

// flashSession 未挂载 FlashMiddleware 时返回 nil
func flashSession(c *gin.Context) sessions.Session {
	v, ok := c.Get(sessions.DefaultKey)
	if !ok {
		return nil
	}
	session, _ := v.(sessions.Session)
	return session
}

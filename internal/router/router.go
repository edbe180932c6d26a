package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chirper/internal/handler"
	"chirper/internal/middleware"
	"chirper/internal/service"
	"chirper/pkg/metrics"
	"chirper/pkg/response"
	"chirper/web"
)

// Handlers 路由需要的全部 handler
type Handlers struct {
	Auth    *handler.AuthHandler
	Chirp   *handler.ChirpHandler
	Profile *handler.ProfileHandler
	Health  *handler.HealthHandler
}

// Options 路由级配置
type Options struct {
	CookieName string         // 登录会话 cookie
	FlashStore sessions.Store // flash 提示的签名 cookie 存储
}

// SetupRouter 设置路由
func SetupRouter(h Handlers, auth service.AuthService, opts Options) (*gin.Engine, error) {
	// 创建 Gin Engine（不使用默认中间件）
	r := gin.New()

	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// 全局中间件
	r.Use(middleware.LoggerMiddleware())                       // 日志
	r.Use(metrics.Middleware())                                // 指标
	r.Use(response.FlashMiddleware(opts.FlashStore))           // flash 提示
	r.Use(middleware.RecoveryMiddleware())                     // Panic 恢复
	r.Use(middleware.SessionMiddleware(auth, opts.CookieName)) // 解析会话

	// 运维接口
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 公开页面
	r.GET("/", h.Auth.Home)
	r.GET("/signup", h.Auth.SignupForm)
	r.POST("/signup", h.Auth.Signup)
	r.GET("/login", h.Auth.LoginForm)
	r.POST("/login", h.Auth.Login)

	// 需要登录的页面
	authed := r.Group("/", middleware.RequireAuth())
	{
		authed.GET("/timeline", h.Chirp.Timeline)
		authed.POST("/timeline", h.Chirp.PostChirp)
		authed.GET("/chirp/:id", h.Chirp.Chirp)
		authed.POST("/chirp/:id", h.Chirp.PostComment)
		authed.GET("/user/:username", h.Profile.Profile)
		authed.GET("/logout", h.Auth.Logout)
	}

	r.NoRoute(handler.NotFound)

	return r, nil
}

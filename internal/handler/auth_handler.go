package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chirper/internal/dto"
	"chirper/internal/middleware"
	"chirper/internal/service"
	"chirper/pkg/response"
)

// CookieConfig 会话 cookie 参数
type CookieConfig struct {
	Name   string
	MaxAge int // 秒
	Secure bool
}

// ============================================================================
// Handler 结构体
// ============================================================================

type AuthHandler struct {
	auth   service.AuthService
	cookie CookieConfig
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(auth service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// Home 首页
func (h *AuthHandler) Home(c *gin.Context) {
	render(c, response.CodeSuccess, "home.html", "", nil)
}

// SignupForm 注册页
func (h *AuthHandler) SignupForm(c *gin.Context) {
	render(c, response.CodeSuccess, "signup.html", "Sign up", gin.H{"Username": ""})
}

// Signup 提交注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBind(&req); err != nil {
		badForm(c, err, "signup.html", "Sign up", gin.H{"Username": ""})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	_, err := h.auth.Register(ctx, &req)
	switch {
	case err == nil:
		response.SetFlash(c, response.FlashSuccess, "Account created successfully! You can now log in.")
		response.Redirect(c, "/login")
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicateUsername):
		response.FlashNow(c, response.FlashError, err.Error())
		render(c, errorCode(err), "signup.html", "Sign up", gin.H{"Username": req.Username})
	default:
		renderFailure(c, err)
	}
}

// LoginForm 登录页
func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, response.CodeSuccess, "login.html", "Log in", gin.H{"Username": ""})
}

// Login 提交登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBind(&req); err != nil {
		badForm(c, err, "login.html", "Log in", gin.H{"Username": ""})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	session, err := h.auth.Authenticate(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.FlashNow(c, response.FlashError, err.Error())
			render(c, response.CodeInvalidCredentials, "login.html", "Log in", gin.H{"Username": req.Username})
			return
		}
		renderFailure(c, err)
		return
	}

	// 设置Cookie（HttpOnly，防止脚本读取）
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, session.Token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
	response.Redirect(c, "/timeline")
}

// Logout 登出：销毁会话并清除 cookie；会话存储失败不影响登出
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	_ = h.auth.EndSession(ctx, middleware.SessionToken(c))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}

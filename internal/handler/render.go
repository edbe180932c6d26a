package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chirper/internal/middleware"
	"chirper/internal/service"
	log "chirper/pkg/logger"
	"chirper/pkg/response"
)

// requestTimeout 单次请求访问存储的超时时间
const requestTimeout = 3 * time.Second

const invalidFormMessage = "Invalid form submission. Please try again."

// render 渲染页面并补齐公共数据
func render(c *gin.Context, code int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CurrentUser"] = middleware.CurrentUser(c)
	response.HTML(c, code, name, data)
}

// errorCode 业务错误 → 业务错误码
func errorCode(err error) int {
	switch {
	case err == nil:
		return response.CodeSuccess
	case errors.Is(err, service.ErrValidation):
		return response.CodeInvalidParams
	case errors.Is(err, service.ErrDuplicateUsername):
		return response.CodeUsernameExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.CodeInvalidCredentials
	case errors.Is(err, service.ErrUnauthenticated):
		return response.CodeUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return response.CodeNotFound
	case errors.Is(err, service.ErrPersistence):
		return response.CodeDatabaseError
	default:
		return response.CodeInternalServerError
	}
}

// renderFailure 处理无法在原页面内提示的错误：404 页、跳转登录或通用错误页
func renderFailure(c *gin.Context, err error) {
	code := errorCode(err)
	switch response.HTTPStatus(code) {
	case http.StatusNotFound:
		NotFound(c)
	case http.StatusUnauthorized:
		c.Redirect(http.StatusFound, middleware.LoginPath)
	default:
		log.Error("请求处理失败",
			zap.Error(err),
			zap.Int("code", code),
			zap.String("path", c.Request.URL.Path))
		render(c, code, "error.html", "Error", nil)
	}
}

// badForm 表单无法解析时在原页面提示
func badForm(c *gin.Context, err error, name, title string, data gin.H) {
	log.Warn("表单解析失败", zap.Error(err), zap.String("path", c.Request.URL.Path))
	response.FlashNow(c, response.FlashError, invalidFormMessage)
	render(c, response.CodeBadRequest, name, title, data)
}

// NotFound 404 页面（同时用作 NoRoute）
func NotFound(c *gin.Context) {
	render(c, response.CodeNotFound, "not_found.html", "Not found", nil)
}

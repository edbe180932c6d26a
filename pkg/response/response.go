package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一JSON响应结构（健康检查等非页面接口）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "OK",
		Data:    data,
	})
}

// Error 返回错误响应，HTTP状态码由业务码推导
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = GetMessage(code)
	}
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// HTML 渲染页面，附带本次待展示的 flash 提示
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = TakeFlashes(c)
	c.HTML(HTTPStatus(code), name, data)
}

// Redirect 303 跳转（POST 之后统一使用，浏览器改用 GET）
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

package response

import "net/http"

// 业务错误码定义
const (
	// 成功
	CodeSuccess = 0

	// 客户端错误 (400xx)
	CodeBadRequest    = 40000 // 请求参数错误
	CodeInvalidParams = 40001 // 参数验证失败

	// 认证错误 (401xx)
	CodeUnauthorized       = 40100 // 未登录
	CodeInvalidCredentials = 40103 // 用户名或密码错误

	// 资源错误 (404xx)
	CodeNotFound = 40400 // 资源不存在（用户、chirp）

	// 业务冲突 (409xx)
	CodeConflict       = 40900 // 资源冲突，HTTPStatus 的区间下界
	CodeUsernameExists = 40902 // 用户名已存在

	// 服务端错误 (500xx)
	CodeInternalServerError = 50000 // 服务器内部错误
	CodeDatabaseError       = 50001 // 数据库错误
	CodeServiceUnavailable  = 50004 // 服务不可用
)

// CodeMessage 错误信息映射（日志与 JSON 接口使用）
var CodeMessage = map[int]string{
	CodeSuccess: "OK",

	CodeBadRequest:    "请求参数错误",
	CodeInvalidParams: "参数验证失败",

	CodeUnauthorized:       "未登录",
	CodeInvalidCredentials: "用户名或密码错误",

	CodeNotFound: "资源不存在",

	CodeConflict:       "资源冲突",
	CodeUsernameExists: "用户名已存在",

	CodeInternalServerError: "服务器内部错误",
	CodeDatabaseError:       "数据库错误",
	CodeServiceUnavailable:  "服务不可用",
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// HTTPStatus 根据业务错误码获取HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code >= CodeBadRequest && code < CodeUnauthorized:
		return http.StatusBadRequest
	case code >= CodeUnauthorized && code < 40200:
		return http.StatusUnauthorized
	case code >= CodeNotFound && code < 40500:
		return http.StatusNotFound
	case code >= CodeConflict && code < 41000:
		return http.StatusConflict
	case code == CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case code >= CodeInternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

package dto

// ============================================================================
// 注册 / 登录相关 DTO
// ============================================================================

// RegisterDTO 注册请求
type RegisterDTO struct {
	Username string `form:"username"`
	Password string `form:"password"` // 明文密码
}

// LoginDTO 登录请求
type LoginDTO struct {
	Username string `form:"username"`
	Password string `form:"password"` // 明文密码
}

// SessionDTO 登录成功后建立的会话
type SessionDTO struct {
	Token    string
	UserID   int64
	Username string
}

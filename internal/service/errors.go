package service

import (
	"errors"
	"fmt"
	"time"

	"chirper/internal/dto"
)

// ============================================================================
// 业务错误定义
// ============================================================================

var (
	// ErrValidation 参数校验失败，具体原因见 *dto.ValidationError
	ErrValidation = dto.ErrValidation

	ErrDuplicateUsername  = errors.New("Username already taken. Please choose a different one.")
	ErrInvalidCredentials = errors.New("Invalid username or password. Please try again.")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence error")
	ErrUnauthenticated    = errors.New("authentication required")
)

// persistenceError 包装存储层错误，调用方只能通过 errors.Is(err, ErrPersistence) 判断
func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// Identity 已认证的调用方，由会话解析得到，显式传入需要鉴权的业务方法
type Identity struct {
	UserID int64
}

// IsAnonymous 未登录
func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

// Clock 当前时间来源，测试中可替换
type Clock func() time.Time

// SystemClock 系统时钟（UTC）
func SystemClock() time.Time {
	return time.Now().UTC()
}

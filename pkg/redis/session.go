package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
)

const (
	// DefaultSessionTTL Session默认过期时间（2小时）
	DefaultSessionTTL = 2 * time.Hour

	// SessionKeyPrefix Session键前缀
	SessionKeyPrefix = "chirper:sess:"
)

// ErrSessionNotFound Session不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// SessionManager Session管理器接口
type SessionManager interface {
	// CreateSession 创建Session（生成token并存储到Redis）
	CreateSession(ctx context.Context, userID int64) (string, error)

	// ValidateSession 验证Session（根据token获取userID）
	ValidateSession(ctx context.Context, token string) (int64, error)

	// DestroySession 销毁Session（登出时删除token）
	DestroySession(ctx context.Context, token string) error

	// RefreshSession 刷新Session（延长有效期），会话不存在时返回 ErrSessionNotFound
	RefreshSession(ctx context.Context, token string) error

	// Ping 检查会话存储是否可用
	Ping(ctx context.Context) error
}

// sessionManager Session管理器实现
type sessionManager struct {
	client Client
	ttl    time.Duration
}

// NewSessionManager 创建Session管理器，ttl<=0 时使用默认值
func NewSessionManager(client Client, ttl time.Duration) SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionManager{client: client, ttl: ttl}
}

// CreateSession 创建Session
func (sm *sessionManager) CreateSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	key := SessionKeyPrefix + token

	if err := sm.client.Set(ctx, key, userID, sm.ttl); err != nil {
		log.Error("创建Session失败", zap.Error(err), zap.Int64("user_id", userID))
		return "", fmt.Errorf("创建Session失败: %w", err)
	}

	log.Debug("创建Session成功", zap.Int64("user_id", userID))
	return token, nil
}

// ValidateSession 验证Session
func (sm *sessionManager) ValidateSession(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	userID, err := sm.client.GetInt64(ctx, SessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, ErrNil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("读取Session失败: %w", err)
	}
	return userID, nil
}

// DestroySession 销毁Session
func (sm *sessionManager) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := sm.client.Del(ctx, SessionKeyPrefix+token); err != nil {
		log.Error("销毁Session失败", zap.Error(err))
		return err
	}
	log.Debug("销毁Session成功")
	return nil
}

// RefreshSession 刷新Session
func (sm *sessionManager) RefreshSession(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	ok, err := sm.client.Expire(ctx, SessionKeyPrefix+token, sm.ttl)
	if err != nil {
		return fmt.Errorf("刷新Session失败: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (sm *sessionManager) Ping(ctx context.Context) error {
	return sm.client.Ping(ctx)
}

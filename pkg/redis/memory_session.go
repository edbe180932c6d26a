package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MaxMemorySessions 进程内会话上限，超出后淘汰最久未使用的会话
const MaxMemorySessions = 100000

// memorySessionManager 进程内会话存储，用于单机 SQLite 部署与测试，重启后会话全部失效
type memorySessionManager struct {
	cache *expirable.LRU[string, int64]
}

// NewMemorySessionManager 创建进程内Session管理器，ttl<=0 时使用默认值
func NewMemorySessionManager(ttl time.Duration) SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &memorySessionManager{
		cache: expirable.NewLRU[string, int64](MaxMemorySessions, nil, ttl),
	}
}

func (m *memorySessionManager) CreateSession(_ context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	m.cache.Add(token, userID)
	return token, nil
}

func (m *memorySessionManager) ValidateSession(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}
	userID, ok := m.cache.Get(token)
	if !ok {
		return 0, ErrSessionNotFound
	}
	return userID, nil
}

func (m *memorySessionManager) DestroySession(_ context.Context, token string) error {
	m.cache.Remove(token)
	return nil
}

// RefreshSession 重新写入即重置过期时间
func (m *memorySessionManager) RefreshSession(_ context.Context, token string) error {
	userID, ok := m.cache.Get(token)
	if !ok {
		return ErrSessionNotFound
	}
	m.cache.Add(token, userID)
	return nil
}

// Ping 进程内存储始终可用
func (m *memorySessionManager) Ping(context.Context) error {
	return nil
}

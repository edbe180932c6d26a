package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chirper/config"
	log "chirper/pkg/logger"
)

// ErrNil 键不存在
var ErrNil = redis.Nil

const pingTimeout = 5 * time.Second

// Client Redis客户端接口
type Client interface {
	// Set 设置键值对
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// GetInt64 获取int64类型的值，键不存在时返回 ErrNil
	GetInt64(ctx context.Context, key string) (int64, error)

	// Del 删除一个或多个键
	Del(ctx context.Context, keys ...string) error

	// Expire 设置键的过期时间，键不存在时返回 false
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)

	// Ping 测试Redis连接
	Ping(ctx context.Context) error

	// Close 关闭Redis连接
	Close() error
}

// redisClient Redis客户端实现
type redisClient struct {
	client *redis.Client
}

// InitRedis 初始化Redis连接
func InitRedis(cfg *config.Config) (Client, error) {
	log.Info("开始初始化Redis连接",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
		zap.Int("db", cfg.Redis.DB),
	)

	client := redis.NewClient(newOptions(&cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("Redis连接测试失败", zap.Error(err))
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info("Redis连接成功",
		zap.String("addr", cfg.Redis.GetAddr()),
		zap.Int("pool_size", cfg.Redis.PoolSize),
	)

	return NewClient(client), nil
}

// newOptions 配置映射为 go-redis 参数，未配置的项沿用 go-redis 默认值
func newOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.GetDialTimeout(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}
}

// NewClient 包装已有的 go-redis 客户端
func NewClient(client *redis.Client) Client {
	return &redisClient{client: client}
}

func (r *redisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *redisClient) GetInt64(ctx context.Context, key string) (int64, error) {
	return r.client.Get(ctx, key).Int64()
}

func (r *redisClient) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisClient) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return r.client.Expire(ctx, key, expiration).Result()
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

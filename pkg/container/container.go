package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"chirper/config"
	"chirper/internal/handler"
	"chirper/internal/repository"
	"chirper/internal/router"
	"chirper/internal/service"
	"chirper/pkg/db"
	log "chirper/pkg/logger"
	"chirper/pkg/redis"
	"chirper/pkg/response"
)

// Container 全局依赖注入容器
var Container *dig.Container

// closers 按创建顺序记录需要释放的资源
var closers []func() error

// Init 初始化依赖注入容器，重复调用时先释放上一次创建的资源
func Init(cfg *config.Config) error {
	Close()
	Container = dig.New()

	// 注册所有依赖
	if err := registerProviders(cfg); err != nil {
		return err
	}

	return nil
}

// registerProviders 注册所有提供者
func registerProviders(cfg *config.Config) error {
	providers := []interface{}{
		func() *config.Config { return cfg },

		// 基础设施
		func(cfg *config.Config) (*sqlx.DB, error) {
			conn, err := db.InitDB(cfg)
			if err != nil {
				return nil, err
			}
			closers = append(closers, conn.Close)
			return conn, nil
		},
		newSessionManager,
		func(cfg *config.Config) (db.IDGenerator, error) {
			return db.NewSnowflake(cfg.Snowflake.MachineID)
		},
		func() service.Clock { return service.SystemClock },

		// 仓储
		repository.NewTransactor,
		repository.NewUserRepository,
		repository.NewChirpRepository,
		repository.NewCommentRepository,

		// 业务
		service.NewAuthService,
		service.NewChirpService,
		service.NewCommentService,
		service.NewProfileService,

		// HTTP
		func(auth service.AuthService, cfg *config.Config) *handler.AuthHandler {
			return handler.NewAuthHandler(auth, handler.CookieConfig{
				Name:   cfg.Session.GetCookieName(),
				MaxAge: int(cfg.Session.GetTTL() / time.Second),
				Secure: cfg.Server.CookieSecure,
			})
		},
		handler.NewChirpHandler,
		handler.NewProfileHandler,
		handler.NewHealthHandler,
		newFlashStore,
		newRouter,
	}

	for _, p := range providers {
		if err := Container.Provide(p); err != nil {
			return fmt.Errorf("注册依赖失败: %w", err)
		}
	}
	return nil
}

// newSessionManager 按配置选择 Redis 或进程内会话存储
func newSessionManager(cfg *config.Config) (redis.SessionManager, error) {
	switch cfg.Session.GetStore() {
	case "memory":
		log.Warn("使用进程内会话存储，重启后会话失效")
		return redis.NewMemorySessionManager(cfg.Session.GetTTL()), nil
	case "redis":
		client, err := redis.InitRedis(cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, client.Close)
		return redis.NewSessionManager(client, cfg.Session.GetTTL()), nil
	default:
		return nil, fmt.Errorf("不支持的会话存储: %s", cfg.Session.Store)
	}
}

// newFlashStore 未配置 session.secret 时使用随机密钥，重启后未展示的提示丢失
func newFlashStore(cfg *config.Config) (sessions.Store, error) {
	secret := cfg.Session.GetSecret()
	if len(secret) == 0 {
		log.Warn("未配置 session.secret，使用随机密钥签名 flash cookie")
		if secret = securecookie.GenerateRandomKey(32); secret == nil {
			return nil, fmt.Errorf("生成 flash 签名密钥失败")
		}
	}
	return response.NewFlashStore(secret, cfg.Server.CookieSecure), nil
}

type routerParams struct {
	dig.In

	Auth        *handler.AuthHandler
	Chirp       *handler.ChirpHandler
	Profile     *handler.ProfileHandler
	Health      *handler.HealthHandler
	AuthService service.AuthService
	FlashStore  sessions.Store
	Config      *config.Config
}

func newRouter(p routerParams) (*gin.Engine, error) {
	return router.SetupRouter(router.Handlers{
		Auth:    p.Auth,
		Chirp:   p.Chirp,
		Profile: p.Profile,
		Health:  p.Health,
	}, p.AuthService, router.Options{
		CookieName: p.Config.Session.GetCookieName(),
		FlashStore: p.FlashStore,
	})
}

// Invoke 调用函数，自动注入依赖
func Invoke(function interface{}) error {
	return Container.Invoke(function)
}

// Migrate 对容器中的数据库执行迁移
func Migrate(ctx context.Context) error {
	return Invoke(func(conn *sqlx.DB) error {
		return db.Migrate(ctx, conn)
	})
}

// Close 逆序释放资源
func Close() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Warn("释放资源失败", zap.Error(err))
		}
	}
	closers = nil
}

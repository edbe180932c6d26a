package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"chirper/internal/dto"
	"chirper/internal/model"
	"chirper/internal/repository"
	"chirper/pkg/db"
	log "chirper/pkg/logger"
	"chirper/pkg/metrics"
	"chirper/pkg/redis"
)

// dummyHash 用户不存在时也做一次 bcrypt 比较，使耗时与密码错误一致
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("chirper-dummy-password"), bcrypt.DefaultCost)

// ============================================================================
// AuthService 接口
// ============================================================================

type AuthService interface {
	// Register 注册新用户，返回用户ID
	Register(ctx context.Context, registerDTO *dto.RegisterDTO) (int64, error)

	// Authenticate 校验用户名密码并建立会话
	Authenticate(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.SessionDTO, error)

	// CurrentIdentity 根据会话token解析当前用户，无效token返回 false
	CurrentIdentity(ctx context.Context, token string) (Identity, bool)

	// EndSession 销毁会话
	EndSession(ctx context.Context, token string) error

	// GetUser 查询用户公开信息
	GetUser(ctx context.Context, id int64) (*dto.UserDTO, error)
}

// ============================================================================
// authService 实现
// ============================================================================

type authService struct {
	tx       repository.Transactor
	userRepo repository.UserRepository
	sessions redis.SessionManager
	ids      db.IDGenerator
	now      Clock
	cost     int
}

// NewAuthService 创建AuthService实例
func NewAuthService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	sessions redis.SessionManager,
	ids db.IDGenerator,
	now Clock,
) AuthService {
	return &authService{
		tx:       tx,
		userRepo: userRepo,
		sessions: sessions,
		ids:      ids,
		now:      now,
		cost:     bcrypt.DefaultCost,
	}
}

// ============================================================================
// Register 注册
// ============================================================================

func (s *authService) Register(ctx context.Context, registerDTO *dto.RegisterDTO) (int64, error) {
	// 1. 验证DTO
	if err := registerDTO.Validate(); err != nil {
		log.Warn("注册参数验证失败", zap.Error(err), zap.String("username", registerDTO.Username))
		metrics.RecordRegistration("invalid")
		return 0, err
	}

	// 2. 哈希密码（事务外进行，避免长时间持有连接）
	hash, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), s.cost)
	if err != nil {
		log.Error("密码哈希失败", zap.Error(err))
		metrics.RecordRegistration("error")
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.ids.NextID()
	if err != nil {
		log.Error("生成用户ID失败", zap.Error(err))
		metrics.RecordRegistration("error")
		return 0, persistenceError("generate user id", err)
	}

	user := &model.User{
		ID:           id,
		Username:     registerDTO.Username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	// 3. 同一事务内先查重再插入，并发冲突由唯一索引兜底
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateUsername
		}
		return s.userRepo.Create(ctx, user)
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, repository.ErrDuplicateKey):
		log.Warn("用户名已存在", zap.String("username", user.Username))
		metrics.RecordRegistration("duplicate")
		return 0, ErrDuplicateUsername
	default:
		log.Error("创建用户失败", zap.Error(err), zap.String("username", user.Username))
		metrics.RecordRegistration("error")
		return 0, persistenceError("create user", err)
	}

	log.Info("用户注册成功", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	metrics.RecordRegistration("ok")
	return user.ID, nil
}

// ============================================================================
// Authenticate 登录
// ============================================================================

func (s *authService) Authenticate(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.SessionDTO, error) {
	// 1. 查询用户
	user, err := s.userRepo.GetByUsername(ctx, loginDTO.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("查询用户失败", zap.Error(err), zap.String("username", loginDTO.Username))
		metrics.RecordLogin("error")
		return nil, persistenceError("get user", err)
	}

	// 2. 验证密码，用户不存在时与哑哈希比较
	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(loginDTO.Password))
	if user == nil || cmpErr != nil {
		log.Warn("用户名或密码错误", zap.String("username", loginDTO.Username))
		metrics.RecordLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	// 3. 创建Session
	token, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		log.Error("创建Session失败", zap.Error(err), zap.Int64("user_id", user.ID))
		metrics.RecordLogin("error")
		return nil, persistenceError("create session", err)
	}

	log.Info("用户登录成功", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	metrics.RecordLogin("ok")
	return &dto.SessionDTO{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

// ============================================================================
// CurrentIdentity 解析会话
// ============================================================================

func (s *authService) CurrentIdentity(ctx context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}

	userID, err := s.sessions.ValidateSession(ctx, token)
	if err != nil {
		// 会话存储故障按匿名处理，只记录日志
		if !errors.Is(err, redis.ErrSessionNotFound) {
			log.Error("验证Session失败", zap.Error(err))
		}
		return Identity{}, false
	}

	// 滑动过期：每次访问顺延会话有效期，失败不影响本次请求
	if err := s.sessions.RefreshSession(ctx, token); err != nil {
		log.Warn("刷新Session失败", zap.Error(err), zap.Int64("user_id", userID))
	}
	return Identity{UserID: userID}, true
}

// ============================================================================
// EndSession 登出
// ============================================================================

func (s *authService) EndSession(ctx context.Context, token string) error {
	if err := s.sessions.DestroySession(ctx, token); err != nil {
		log.Error("销毁Session失败", zap.Error(err))
		return persistenceError("destroy session", err)
	}
	log.Info("用户登出成功")
	return nil
}

// ============================================================================
// GetUser 查询用户
// ============================================================================

func (s *authService) GetUser(ctx context.Context, id int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("获取用户信息失败", zap.Error(err), zap.Int64("user_id", id))
		return nil, persistenceError("get user", err)
	}
	return dto.FromUserModel(user), nil
}

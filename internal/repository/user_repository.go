package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirper/internal/model"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户，用户名冲突时返回 ErrDuplicateKey
	Create(ctx context.Context, user *model.User) error

	// GetByUsername 根据用户名查询用户（用于登录）
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByID 根据ID查询用户
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// ExistsByUsername 用户名是否已被占用
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// userRepository 用户仓储实现
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`)

	if _, err := q.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt); err != nil {
		return classify(err, "failed to create user")
	}
	return nil
}

// GetByUsername 根据用户名查询用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`)

	var user model.User
	if err := q.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetByID 根据ID查询用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`)

	var user model.User
	if err := q.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// ExistsByUsername 检查用户名是否存在
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`)

	var n int
	if err := q.GetContext(ctx, &n, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return n > 0, nil
}

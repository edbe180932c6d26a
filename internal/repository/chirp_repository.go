package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirper/internal/model"
)

// ChirpRepository chirp 仓储接口
type ChirpRepository interface {
	// Create 创建 chirp
	Create(ctx context.Context, chirp *model.Chirp) error

	// GetByID 查询单条 chirp（附作者用户名）
	GetByID(ctx context.Context, id int64) (*model.ChirpWithAuthor, error)

	// Exists chirp 是否存在
	Exists(ctx context.Context, id int64) (bool, error)

	// ListAll 全部 chirp，按时间倒序
	ListAll(ctx context.Context) ([]*model.ChirpWithAuthor, error)

	// FindChirpsByUser 某个用户的 chirp，按时间倒序
	FindChirpsByUser(ctx context.Context, userID int64) ([]*model.ChirpWithAuthor, error)
}

const chirpSelect = `SELECT c.id, c.text, c.created_at, c.user_id, u.username
	FROM chirps c JOIN users u ON u.id = c.user_id`

// 同一时间戳按 id 倒序，雪花 id 单调递增，即插入顺序
const chirpOrder = ` ORDER BY c.created_at DESC, c.id DESC`

type chirpRepository struct {
	db *sqlx.DB
}

// NewChirpRepository 创建 chirp 仓储实例
func NewChirpRepository(db *sqlx.DB) ChirpRepository {
	return &chirpRepository{db: db}
}

func (r *chirpRepository) Create(ctx context.Context, chirp *model.Chirp) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`INSERT INTO chirps (id, text, created_at, user_id) VALUES (?, ?, ?, ?)`)

	if _, err := q.ExecContext(ctx, query, chirp.ID, chirp.Text, chirp.CreatedAt, chirp.UserID); err != nil {
		return classify(err, "failed to create chirp")
	}
	return nil
}

func (r *chirpRepository) GetByID(ctx context.Context, id int64) (*model.ChirpWithAuthor, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(chirpSelect + ` WHERE c.id = ?`)

	var chirp model.ChirpWithAuthor
	if err := q.GetContext(ctx, &chirp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("chirp %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get chirp: %w", err)
	}
	return &chirp, nil
}

func (r *chirpRepository) Exists(ctx context.Context, id int64) (bool, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT COUNT(*) FROM chirps WHERE id = ?`)

	var n int
	if err := q.GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("failed to check chirp: %w", err)
	}
	return n > 0, nil
}

func (r *chirpRepository) ListAll(ctx context.Context) ([]*model.ChirpWithAuthor, error) {
	q := conn(ctx, r.db)

	chirps := []*model.ChirpWithAuthor{}
	if err := q.SelectContext(ctx, &chirps, chirpSelect+chirpOrder); err != nil {
		return nil, fmt.Errorf("failed to list chirps: %w", err)
	}
	return chirps, nil
}

func (r *chirpRepository) FindChirpsByUser(ctx context.Context, userID int64) ([]*model.ChirpWithAuthor, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(chirpSelect + ` WHERE c.user_id = ?` + chirpOrder)

	chirps := []*model.ChirpWithAuthor{}
	if err := q.SelectContext(ctx, &chirps, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list chirps by user: %w", err)
	}
	return chirps, nil
}

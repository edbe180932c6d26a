package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirper/internal/model"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// Create 创建评论
	Create(ctx context.Context, comment *model.Comment) error

	// FindCommentsByChirp 某条 chirp 的评论，按创建顺序
	FindCommentsByChirp(ctx context.Context, chirpID int64) ([]*model.CommentWithAuthor, error)
}

type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository 创建评论仓储实例
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`INSERT INTO comments (id, text, created_at, user_id, chirp_id) VALUES (?, ?, ?, ?, ?)`)

	_, err := q.ExecContext(ctx, query, comment.ID, comment.Text, comment.CreatedAt, comment.UserID, comment.ChirpID)
	if err != nil {
		return classify(err, "failed to create comment")
	}
	return nil
}

func (r *commentRepository) FindCommentsByChirp(ctx context.Context, chirpID int64) ([]*model.CommentWithAuthor, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT m.id, m.text, m.created_at, m.user_id, m.chirp_id, u.username
		FROM comments m JOIN users u ON u.id = m.user_id
		WHERE m.chirp_id = ?
		ORDER BY m.created_at ASC, m.id ASC`)

	comments := []*model.CommentWithAuthor{}
	if err := q.SelectContext(ctx, &comments, query, chirpID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chirper/internal/dto"
	"chirper/internal/model"
	"chirper/internal/repository"
	"chirper/pkg/db"
	log "chirper/pkg/logger"
	"chirper/pkg/metrics"
)

// CommentService 评论
type CommentService interface {
	// PostComment 在 chirp 下发表评论，chirp 不存在返回 ErrNotFound
	PostComment(ctx context.Context, identity Identity, postDTO *dto.PostCommentDTO) (int64, error)

	// GetChirpWithComments chirp 详情及按时间顺序排列的评论
	GetChirpWithComments(ctx context.Context, chirpID int64) (*dto.ChirpDetailDTO, error)
}

type commentService struct {
	tx          repository.Transactor
	chirpRepo   repository.ChirpRepository
	commentRepo repository.CommentRepository
	ids         db.IDGenerator
	now         Clock
}

// NewCommentService 创建CommentService实例
func NewCommentService(
	tx repository.Transactor,
	chirpRepo repository.ChirpRepository,
	commentRepo repository.CommentRepository,
	ids db.IDGenerator,
	now Clock,
) CommentService {
	return &commentService{
		tx:          tx,
		chirpRepo:   chirpRepo,
		commentRepo: commentRepo,
		ids:         ids,
		now:         now,
	}
}

func (s *commentService) PostComment(ctx context.Context, identity Identity, postDTO *dto.PostCommentDTO) (int64, error) {
	if identity.IsAnonymous() {
		return 0, ErrUnauthenticated
	}

	postDTO.Normalize()

	var commentID int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// chirp 是否存在先于文本校验
		exists, err := s.chirpRepo.Exists(ctx, postDTO.ChirpID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		if err := postDTO.Validate(); err != nil {
			return err
		}

		id, err := s.ids.NextID()
		if err != nil {
			return err
		}

		comment := &model.Comment{
			ID:        id,
			Text:      postDTO.Text,
			CreatedAt: s.now().UTC(),
			UserID:    identity.UserID,
			ChirpID:   postDTO.ChirpID,
		}
		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}
		commentID = id
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		log.Warn("评论的chirp不存在", zap.Int64("chirp_id", postDTO.ChirpID))
		return 0, ErrNotFound
	case errors.Is(err, ErrValidation):
		log.Debug("评论参数验证失败", zap.Error(err), zap.Int64("chirp_id", postDTO.ChirpID))
		return 0, err
	default:
		log.Error("发表评论失败", zap.Error(err), zap.Int64("chirp_id", postDTO.ChirpID))
		return 0, persistenceError("create comment", err)
	}

	log.Info("发表评论成功",
		zap.Int64("comment_id", commentID),
		zap.Int64("chirp_id", postDTO.ChirpID),
		zap.Int64("user_id", identity.UserID))
	metrics.RecordComment()
	return commentID, nil
}

func (s *commentService) GetChirpWithComments(ctx context.Context, chirpID int64) (*dto.ChirpDetailDTO, error) {
	chirp, err := s.chirpRepo.GetByID(ctx, chirpID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("查询chirp失败", zap.Error(err), zap.Int64("chirp_id", chirpID))
		return nil, persistenceError("get chirp", err)
	}

	comments, err := s.commentRepo.FindCommentsByChirp(ctx, chirpID)
	if err != nil {
		log.Error("查询评论失败", zap.Error(err), zap.Int64("chirp_id", chirpID))
		return nil, persistenceError("list comments", err)
	}

	return &dto.ChirpDetailDTO{
		Chirp:    dto.FromChirpModel(chirp),
		Comments: dto.FromCommentModels(comments),
	}, nil
}

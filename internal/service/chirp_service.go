package service

import (
	"context"

	"go.uber.org/zap"

	"chirper/internal/dto"
	"chirper/internal/model"
	"chirper/internal/repository"
	"chirper/pkg/db"
	log "chirper/pkg/logger"
	"chirper/pkg/metrics"
)

// ChirpService 发布与时间线
type ChirpService interface {
	// PostChirp 以 identity 身份发布 chirp，返回 chirp ID
	PostChirp(ctx context.Context, identity Identity, postDTO *dto.PostChirpDTO) (int64, error)

	// ListTimeline 全站时间线，最新在前
	ListTimeline(ctx context.Context) ([]*dto.ChirpDTO, error)
}

type chirpService struct {
	tx        repository.Transactor
	chirpRepo repository.ChirpRepository
	ids       db.IDGenerator
	now       Clock
}

// NewChirpService 创建ChirpService实例
func NewChirpService(
	tx repository.Transactor,
	chirpRepo repository.ChirpRepository,
	ids db.IDGenerator,
	now Clock,
) ChirpService {
	return &chirpService{tx: tx, chirpRepo: chirpRepo, ids: ids, now: now}
}

func (s *chirpService) PostChirp(ctx context.Context, identity Identity, postDTO *dto.PostChirpDTO) (int64, error) {
	if identity.IsAnonymous() {
		return 0, ErrUnauthenticated
	}

	postDTO.Normalize()
	if err := postDTO.Validate(); err != nil {
		log.Debug("chirp 参数验证失败", zap.Error(err), zap.Int64("user_id", identity.UserID))
		return 0, err
	}

	id, err := s.ids.NextID()
	if err != nil {
		log.Error("生成chirp ID失败", zap.Error(err))
		return 0, persistenceError("generate chirp id", err)
	}

	chirp := &model.Chirp{
		ID:        id,
		Text:      postDTO.Text,
		CreatedAt: s.now().UTC(),
		UserID:    identity.UserID,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.chirpRepo.Create(ctx, chirp)
	})
	if err != nil {
		log.Error("发布chirp失败", zap.Error(err), zap.Int64("user_id", identity.UserID))
		return 0, persistenceError("create chirp", err)
	}

	log.Info("发布chirp成功", zap.Int64("chirp_id", chirp.ID), zap.Int64("user_id", identity.UserID))
	metrics.RecordChirp()
	return chirp.ID, nil
}

func (s *chirpService) ListTimeline(ctx context.Context) ([]*dto.ChirpDTO, error) {
	chirps, err := s.chirpRepo.ListAll(ctx)
	if err != nil {
		log.Error("查询时间线失败", zap.Error(err))
		return nil, persistenceError("list timeline", err)
	}
	return dto.FromChirpModels(chirps), nil
}

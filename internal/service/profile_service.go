package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chirper/internal/dto"
	"chirper/internal/repository"
	log "chirper/pkg/logger"
)

// ProfileService 用户主页
type ProfileService interface {
	// GetProfile 按用户名查询用户及其 chirp（最新在前）
	GetProfile(ctx context.Context, username string) (*dto.ProfileDTO, error)
}

type profileService struct {
	userRepo  repository.UserRepository
	chirpRepo repository.ChirpRepository
}

// NewProfileService 创建ProfileService实例
func NewProfileService(userRepo repository.UserRepository, chirpRepo repository.ChirpRepository) ProfileService {
	return &profileService{userRepo: userRepo, chirpRepo: chirpRepo}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("查询用户失败", zap.Error(err), zap.String("username", username))
		return nil, persistenceError("get user", err)
	}

	chirps, err := s.chirpRepo.FindChirpsByUser(ctx, user.ID)
	if err != nil {
		log.Error("查询用户chirp失败", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, persistenceError("list user chirps", err)
	}

	return &dto.ProfileDTO{
		User:   dto.FromUserModel(user),
		Chirps: dto.FromChirpModels(chirps),
	}, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/internal/dto"
	"chirper/internal/model"
	"chirper/internal/repository"
)

func TestGetProfile_OnlyOwnChirpsNewestFirst(t *testing.T) {
	env := newTestEnv(t, newStepClock().Now)
	ctx := context.Background()

	alice, err := env.auth.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	bob, err := env.auth.Register(ctx, &dto.RegisterDTO{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	a1, err := env.chirps.PostChirp(ctx, Identity{UserID: alice}, &dto.PostChirpDTO{Text: "a1"})
	require.NoError(t, err)
	_, err = env.chirps.PostChirp(ctx, Identity{UserID: bob}, &dto.PostChirpDTO{Text: "b1"})
	require.NoError(t, err)
	a2, err := env.chirps.PostChirp(ctx, Identity{UserID: alice}, &dto.PostChirpDTO{Text: "a2"})
	require.NoError(t, err)

	profile, err := env.profiles.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	require.Len(t, profile.Chirps, 2)
	assert.Equal(t, a2, profile.Chirps[0].ID)
	assert.Equal(t, a1, profile.Chirps[1].ID)
	for _, c := range profile.Chirps {
		assert.Equal(t, alice, c.AuthorID)
	}
}

func TestGetProfile_NoChirps(t *testing.T) {
	env := newTestEnv(t, SystemClock)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterDTO{Username: "quiet", Password: "pw"})
	require.NoError(t, err)

	profile, err := env.profiles.GetProfile(ctx, "quiet")
	require.NoError(t, err)
	assert.Empty(t, profile.Chirps)
}

func TestGetProfile_NotFound(t *testing.T) {
	env := newTestEnv(t, SystemClock)

	_, err := env.profiles.GetProfile(context.Background(), "nobody")
	assert.Equal(t, ErrNotFound, err)
}

func TestGetProfile_StoreErrors(t *testing.T) {
	userRepo := &MockUserRepository{}
	chirpRepo := &MockChirpRepository{}
	svc := NewProfileService(userRepo, chirpRepo)
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "broken").Return(nil, errors.New("timeout"))
	userRepo.On("GetByUsername", ctx, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
	chirpRepo.On("FindChirpsByUser", ctx, int64(1)).Return(nil, errors.New("timeout"))

	_, err := svc.GetProfile(ctx, "broken")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetProfile(ctx, "alice")
	assert.ErrorIs(t, err, ErrPersistence)
}

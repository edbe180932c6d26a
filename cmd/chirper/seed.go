package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chirper/internal/dto"
	"chirper/internal/service"
	"chirper/pkg/container"
	log "chirper/pkg/logger"
)

const (
	// DefaultSeedPassword 演示账号统一密码
	DefaultSeedPassword = "P@ssw0rd!"
)

var (
	seedUsers   int
	seedChirps  int
	seedWorkers int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo users and chirps",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedUsers <= 0 || seedWorkers <= 0 {
			return errors.New("--users and --workers must be positive")
		}
		return container.Invoke(func(auth service.AuthService, chirps service.ChirpService) error {
			return seed(cmd.Context(), auth, chirps)
		})
	},
}

func seed(ctx context.Context, auth service.AuthService, chirps service.ChirpService) error {
	// 1. 创建用户（已存在的跳过）
	ids := make([]int64, 0, seedUsers)
	for i := 0; i < seedUsers; i++ {
		username := fmt.Sprintf("user%04d", i+1)
		id, err := auth.Register(ctx, &dto.RegisterDTO{Username: username, Password: DefaultSeedPassword})
		switch {
		case err == nil:
			ids = append(ids, id)
		case errors.Is(err, service.ErrDuplicateUsername):
			log.Info("用户已存在，跳过", zap.String("username", username))
		default:
			return err
		}
	}
	if len(ids) == 0 {
		log.Info("没有新用户，不生成chirp")
		return nil
	}

	// 2. 并发发布 chirp
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		posted   atomic.Int64
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < seedWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				identity := service.Identity{UserID: ids[n%len(ids)]}
				text := fmt.Sprintf("Demo chirp #%d", n+1)
				if _, err := chirps.PostChirp(ctx, identity, &dto.PostChirpDTO{Text: text}); err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				posted.Add(1)
			}
		}()
	}
	for n := 0; n < seedChirps; n++ {
		jobs <- n
	}
	close(jobs)
	wg.Wait()

	log.Info("演示数据生成完成",
		zap.Int("users", len(ids)),
		zap.Int64("chirps", posted.Load()))
	return firstErr
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", 10, "创建的用户数")
	seedCmd.Flags().IntVar(&seedChirps, "chirps", 100, "发布的chirp数")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 4, "并发 worker 数量")
	rootCmd.AddCommand(seedCmd)
}

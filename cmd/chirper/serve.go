package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chirper/pkg/container"
	log "chirper/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(cfg.Server.Mode)

		if autoMigrate {
			if err := container.Migrate(cmd.Context()); err != nil {
				return err
			}
		}

		var engine *gin.Engine
		if err := container.Invoke(func(r *gin.Engine) { engine = r }); err != nil {
			return fmt.Errorf("初始化路由失败: %w", err)
		}

		addr := cfg.Server.GetHTTPAddr()
		srv := &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// 在 goroutine 中启动，主 goroutine 等待退出信号
		serverErr := make(chan error, 1)
		go func() {
			log.Info("HTTP Server 启动成功",
				zap.String("addr", addr),
				zap.String("mode", cfg.Server.Mode))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-serverErr:
			return fmt.Errorf("HTTP Server 异常退出: %w", err)
		case <-quit:
			log.Info("收到退出信号，开始优雅关闭...")
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("关闭 HTTP Server 失败: %w", err)
		}

		log.Info("HTTP Server 已关闭")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "启动前执行数据库迁移")
	rootCmd.AddCommand(serveCmd)
}

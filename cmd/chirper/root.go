package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chirper/config"
	"chirper/pkg/container"
	log "chirper/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "chirper",
	Short:        "Chirper - a small microblogging site",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		// 1. 加载配置
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 2. 初始化日志
		if err := log.Init(&log.Config{
			Level:    cfg.Log.Level,
			Output:   cfg.Log.Output,
			Format:   cfg.Log.Format,
			FilePath: cfg.Log.FilePath,
		}); err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}
		log.Info("配置加载成功", zap.String("config_path", cfgFile))

		// 3. 初始化依赖注入容器
		if err := container.Init(cfg); err != nil {
			return fmt.Errorf("初始化容器失败: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		container.Close()
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "配置文件路径")
}

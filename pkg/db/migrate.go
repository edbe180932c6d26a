package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	log "chirper/pkg/logger"
)

//go:embed migrations
var migrations embed.FS

// gooseLogger 将 goose 输出转到 zap
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Sugar.Infof(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Sugar.Fatalf(format, v...)
}

// migrationTarget 返回 goose 方言与对应的迁移目录
func migrationTarget(driverName string) (dialect, dir string, err error) {
	switch driverName {
	case "mysql":
		return "mysql", "migrations/mysql", nil
	case "postgres", "pgx":
		return "postgres", "migrations/postgres", nil
	case "sqlite":
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("没有驱动 %s 的迁移脚本", driverName)
	}
}

// Migrate 执行全部未应用的迁移
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect, dir, err := migrationTarget(db.DriverName())
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("设置迁移方言失败: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		log.Error("数据库迁移失败", zap.String("dialect", dialect), zap.Error(err))
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info("数据库迁移完成", zap.String("dialect", dialect))
	return nil
}

package db

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx 驱动，注册名 "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL 驱动
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // 纯 Go SQLite，开发与测试使用

	"chirper/config"
	log "chirper/pkg/logger"
)

// DriverName 将配置中的驱动名映射为 database/sql 注册名
func DriverName(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "postgres", "pgsql":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	case "sqlite", "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// InitDB 初始化数据库连接（使用 sqlx），由调用方负责 Close
func InitDB(cfg *config.Config) (*sqlx.DB, error) {
	log.Info("开始初始化数据库连接",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database),
	)

	driverName, err := DriverName(cfg.Database.Driver)
	if err != nil {
		log.Error("不支持的数据库驱动", zap.String("driver", cfg.Database.Driver))
		return nil, err
	}

	db, err := Open(driverName, cfg.Database.GetDSN())
	if err != nil {
		log.Error("连接数据库失败",
			zap.Error(err),
			zap.String("driver", cfg.Database.Driver),
			zap.String("host", cfg.Database.Host),
		)
		return nil, err
	}

	// SQLite 单写者，连接池固定为 1
	if driverName != "sqlite" {
		log.Debug("配置数据库连接池",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
			zap.Int("conn_max_lifetime", cfg.Database.ConnMaxLifetime),
		)
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.GetConnMaxLifetime())
	}

	log.Info("数据库连接成功",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Database),
	)

	return db, nil
}

// Open 按驱动打开连接并完成连通性检查
func Open(driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if driverName == "sqlite" {
		db.SetMaxOpenConns(1)
		pragmas := []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
			"PRAGMA foreign_keys = ON",
		}
		for _, p := range pragmas {
			if _, err := db.Exec(p); err != nil {
				db.Close()
				return nil, fmt.Errorf("设置 SQLite 参数失败 (%s): %w", p, err)
			}
		}
	}

	return db, nil
}

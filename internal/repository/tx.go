package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"chirper/pkg/db"
	log "chirper/pkg/logger"
)

// ============================================================================
// 仓储层错误
// ============================================================================

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey 唯一约束冲突
	ErrDuplicateKey = errors.New("duplicate key")
)

// Queryer *sqlx.DB 与 *sqlx.Tx 的公共子集
type Queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// Transactor 事务管理接口
type Transactor interface {
	// WithinTx 在单个事务中执行 fn，fn 返回错误时回滚，否则提交
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// sqlTransactor 基于 sqlx 的事务实现，事务句柄通过 context 传递给仓储
type sqlTransactor struct {
	db *sqlx.DB
}

// NewTransactor 创建事务管理器
func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlTransactor{db: db}
}

// WithinTx 开启事务
func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// 已在事务中则直接复用
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// panic 时回滚后继续抛出，避免连接被未结束的事务占住
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("事务回滚失败", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "failed to commit transaction")
	}
	return nil
}

// conn 返回当前 context 中的事务，没有则返回连接池
func conn(ctx context.Context, pool *sqlx.DB) Queryer {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return pool
}

// classify 将驱动错误归类为仓储层错误
func classify(err error, msg string) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %v", msg, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

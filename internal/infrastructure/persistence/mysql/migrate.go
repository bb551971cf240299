package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate 执行全部未应用的迁移
func Migrate(db *sql.DB, log *zap.Logger) error {
	return RunMigrations(context.Background(), db, log, "up")
}

// RunMigrations 执行goose命令（up | down | status | version | reset ...）
// 迁移脚本编译进二进制，不依赖工作目录
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log.Named("goose").Sugar()})

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("设置迁移方言失败: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("执行迁移 %s 失败: %w", command, err)
	}
	return nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }

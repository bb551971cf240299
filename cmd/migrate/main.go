// 数据库迁移工具
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
//	go run ./cmd/migrate version
//	go run ./cmd/migrate up-to 1
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/logger"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/mysql"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到.env文件，使用现有环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Database.Driver != config.DriverMySQL {
		log.Fatalf("迁移只支持mysql驱动，当前: %s", cfg.Database.Driver)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "up", "up-by-one", "up-to", "down", "down-to", "redo", "reset", "status", "version":
	default:
		zlog.Fatal("未知命令，可用: up, up-by-one, up-to, down, down-to, redo, reset, status, version",
			zap.String("command", command))
	}

	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("打开数据库失败", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal("数据库连接测试失败", zap.Error(err))
	}

	if err := mysql.RunMigrations(ctx, db, zlog, command, args...); err != nil {
		zlog.Fatal("迁移失败", zap.String("command", command), zap.Error(err))
	}
	zlog.Info("迁移完成", zap.String("command", command))
}

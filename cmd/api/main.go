package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/logger"
	"github.com/xiebiao/biblioteca/pkg/tracing"
)

// @title           Biblioteca Digital API
// @version         1.0
// @description     图书目录管理：增删改查、排序过滤、按书名/类型/作者/状态查询
// @BasePath        /
// @schemes         http
func main() {
	// .env只在本地开发时存在
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到.env文件，使用现有环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("服务异常退出", zap.Error(err))
	}
	zlog.Info("服务已停止")
}

func run(cfg *config.Config, log *zap.Logger) error {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
		log.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	app, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

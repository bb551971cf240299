package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/interface/rpc"
)

// App HTTP服务和可选的gRPC健康检查
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	server *http.Server
	health *rpc.HealthServer
}

func newApp(cfg *config.Config, log *zap.Logger, server *http.Server, health *rpc.HealthServer) *App {
	return &App{cfg: cfg, log: log, server: server, health: health}
}

// Run 阻塞运行直到ctx结束或任一服务失败
// ctx结束后在server.shutdown_timeout内优雅关闭
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("HTTP服务启动",
			zap.String("addr", a.server.Addr),
			zap.String("mode", a.cfg.Server.Mode),
			zap.String("driver", a.cfg.Database.Driver),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("正在关闭HTTP服务", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if a.cfg.GRPC.Enabled {
		g.Go(func() error {
			lis, err := net.Listen("tcp", a.cfg.GRPC.Addr())
			if err != nil {
				return err
			}
			return a.health.Serve(ctx, lis)
		})
	}

	return g.Wait()
}

// Package rpc gRPC健康检查端点（grpc.health.v1.Health）
//
// 数据库能ping通时报告SERVING，否则NOT_SERVING，供k8s探针和grpcurl使用:
//
//	grpcurl -plaintext localhost:9090 grpc.health.v1.Health/Check
package rpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 健康检查中的服务名，空串代表整个进程
const ServiceName = "biblioteca.v1.Catalog"

// Pinger 存储可用性探测
type Pinger func(ctx context.Context) error

// HealthServer gRPC健康检查服务器
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	ping     Pinger
	interval time.Duration
	log      *zap.Logger
}

// NewHealthServer 创建健康检查服务器（含反射服务）
func NewHealthServer(ping Pinger, log *zap.Logger) *HealthServer {
	server := grpc.NewServer(
		grpc.MaxRecvMsgSize(1024*1024),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	return &HealthServer{
		server:   server,
		health:   hs,
		ping:     ping,
		interval: 10 * time.Second,
		log:      log.Named("grpc"),
	}
}

// Serve 阻塞运行直到ctx结束或监听失败，ctx结束时优雅关闭
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	s.check(ctx)
	go s.watch(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("gRPC健康检查已启动", zap.String("addr", lis.Addr().String()))
		errCh <- s.server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		s.log.Info("gRPC健康检查已关闭")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check 探测一次并更新状态
func (s *HealthServer) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.log.Warn("存储不可用", zap.Error(err))
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后重新生成：
//
//	wire gen ./cmd/api
//
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router ← App

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/biblioteca/internal/application/book"
	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/interface/http/handler"
	"github.com/xiebiao/biblioteca/internal/interface/http/router"
	"github.com/xiebiao/biblioteca/internal/interface/rpc"
)

// infrastructureSet 存储和消息
var infrastructureSet = wire.NewSet(
	provideStorage,
	provideBookRepository,
	providePinger,
	provideEventPublisher,
)

var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 图书用例
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewFacetsUseCase,
)

// interfaceSet HTTP路由和gRPC健康检查
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.New,
	router.Server,
	rpc.NewHealthServer,
)

// InitializeApp 组装应用
// 配置和日志在main中先创建，启动失败时也能记录日志
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}

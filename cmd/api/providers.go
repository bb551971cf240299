package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/messaging"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/biblioteca/internal/interface/rpc"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// storage 仓储及其可用性探测
// 仓储和探测共用同一个连接池，所以由一个Provider创建
type storage struct {
	books book.Repository
	ping  rpc.Pinger
}

// provideStorage 按database.driver创建仓储，cache.enabled时包一层Redis目录缓存
func provideStorage(cfg *config.Config, log *zap.Logger) (*storage, func(), error) {
	var (
		s       storage
		cleanup = func() {}
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("使用内存仓储，数据不会持久化")
		s.books = memory.NewBookRepository()
		s.ping = func(context.Context) error { return nil }

	default:
		db, closeDB, err := mysql.NewDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		s.books = mysql.NewBookRepository(db)
		s.ping = sqlDB.PingContext
		cleanup = closeDB
	}

	if cfg.Cache.Enabled {
		client, closeRedis, err := redis.NewClient(cfg, log)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cache := redis.NewCatalogCache(client, cfg.Cache.Prefix, cfg.Cache.TTL, log)
		s.books = redis.NewCachedRepository(s.books, cache)

		closeDB := cleanup
		cleanup = func() {
			closeRedis()
			closeDB()
		}
	}

	return &s, cleanup, nil
}

func provideBookRepository(s *storage) book.Repository { return s.books }

func providePinger(s *storage) rpc.Pinger { return s.ping }

// provideEventPublisher events.enabled时发往RabbitMQ，否则丢弃
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (book.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, "topic", log.Named("mq"))
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return messaging.NewBookEventPublisher(publisher, log), cleanup, nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/pkg/circuitbreaker"
	"github.com/xiebiao/biblioteca/pkg/metrics"
)

// CatalogCache 目录查询缓存（Cache-Aside）
// 1. 读：先查缓存，未命中由调用方查库后回写
// 2. 写：图书增删改成功后删除整个目录命名空间（SCAN + UNLINK）
// 3. Redis故障不影响请求：错误只记日志，熔断后直接跳过缓存
//
// Key格式：{prefix}:catalog:{kind}:{params}
type CatalogCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	prefix  string
	breaker *circuitbreaker.CircuitBreaker
	log     *zap.Logger
}

// NewCatalogCache 创建目录缓存
func NewCatalogCache(client redis.UniversalClient, prefix string, ttl time.Duration, log *zap.Logger) *CatalogCache {
	breaker := circuitbreaker.NewCircuitBreaker("catalog-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, redis.Nil) ||
				errors.Is(err, context.Canceled)
		},
	})

	log = log.Named("catalog-cache")
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Warn("熔断器状态变化", zap.String("name", name), zap.Stringer("from", from), zap.Stringer("to", to))
		metrics.SetGaugeVec(metrics.CircuitBreakerState, float64(to), name)
	})

	return &CatalogCache{
		client:  client,
		ttl:     ttl,
		prefix:  prefix + ":catalog:",
		breaker: breaker,
		log:     log,
	}
}

// GetBooks 命中返回(books, true)；未命中或缓存不可用返回(nil, false)
func (c *CatalogCache) GetBooks(ctx context.Context, key string) ([]*book.Book, bool) {
	var books []*book.Book
	if !c.get(ctx, key, &books) {
		return nil, false
	}
	if books == nil {
		books = []*book.Book{}
	}
	return books, true
}

// SetBooks 回写查询结果
func (c *CatalogCache) SetBooks(ctx context.Context, key string, books []*book.Book) {
	c.set(ctx, key, books)
}

// GetStrings 读取类型/作者等字符串列表
func (c *CatalogCache) GetStrings(ctx context.Context, key string) ([]string, bool) {
	var values []string
	if !c.get(ctx, key, &values) {
		return nil, false
	}
	if values == nil {
		values = []string{}
	}
	return values, true
}

// SetStrings 回写字符串列表
func (c *CatalogCache) SetStrings(ctx context.Context, key string, values []string) {
	c.set(ctx, key, values)
}

// Invalidate 删除全部目录缓存
func (c *CatalogCache) Invalidate(ctx context.Context) {
	err := c.breaker.Execute(func() error {
		iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return c.client.Unlink(ctx, keys...).Err()
	})
	if err != nil {
		c.log.Warn("清除目录缓存失败", zap.Error(err))
	}
}

func (c *CatalogCache) get(ctx context.Context, key string, dst interface{}) bool {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var err error
		raw, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "miss")
		return false
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "skipped")
		return false
	default:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "error")
		c.log.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "error")
		c.log.Warn("缓存反序列化失败", zap.String("key", key), zap.Error(err))
		return false
	}

	metrics.IncCounterVec(metrics.CacheRequestsTotal, "hit")
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("缓存序列化失败", zap.String("key", key), zap.Error(err))
		return
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		c.log.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

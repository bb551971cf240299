package redis

import (
	"context"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// Cache 目录缓存的读写接口，CatalogCache是Redis实现
// 所有方法都不返回错误：缓存只是加速，失败时按未命中处理
type Cache interface {
	GetBooks(ctx context.Context, key string) ([]*book.Book, bool)
	SetBooks(ctx context.Context, key string, books []*book.Book)
	GetStrings(ctx context.Context, key string) ([]string, bool)
	SetStrings(ctx context.Context, key string, values []string)
	Invalidate(ctx context.Context)
}

// invalidateTimeout 写入成功后清缓存的时限
const invalidateTimeout = 3 * time.Second

// cachedRepository 仓储装饰器：目录查询走缓存，写操作成功后清缓存
// FindByID不缓存，更新后的回读总是读库
type cachedRepository struct {
	book.Repository
	cache   Cache
	timeout time.Duration
}

// NewCachedRepository 给仓储加上目录缓存
func NewCachedRepository(repo book.Repository, cache Cache) book.Repository {
	return &cachedRepository{Repository: repo, cache: cache, timeout: invalidateTimeout}
}

func (r *cachedRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Create(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Update(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, id uint) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// invalidate 记录已提交，请求被取消也必须清掉缓存
func (r *cachedRepository) invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()
	r.cache.Invalidate(ctx)
}

func (r *cachedRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	return r.books(ctx, "list:"+params.Key(), func() ([]*book.Book, error) {
		return r.Repository.List(ctx, params)
	})
}

func (r *cachedRepository) SearchByTitle(ctx context.Context, term string) ([]*book.Book, error) {
	return r.books(ctx, "search:"+term, func() ([]*book.Book, error) {
		return r.Repository.SearchByTitle(ctx, term)
	})
}

func (r *cachedRepository) FilterByGenre(ctx context.Context, term string) ([]*book.Book, error) {
	return r.books(ctx, "genero:"+term, func() ([]*book.Book, error) {
		return r.Repository.FilterByGenre(ctx, term)
	})
}

func (r *cachedRepository) FilterByAuthor(ctx context.Context, term string) ([]*book.Book, error) {
	return r.books(ctx, "autor:"+term, func() ([]*book.Book, error) {
		return r.Repository.FilterByAuthor(ctx, term)
	})
}

func (r *cachedRepository) FilterByStatus(ctx context.Context, status string) ([]*book.Book, error) {
	return r.books(ctx, "estado:"+status, func() ([]*book.Book, error) {
		return r.Repository.FilterByStatus(ctx, status)
	})
}

func (r *cachedRepository) Genres(ctx context.Context) ([]string, error) {
	return r.strings(ctx, "facet:generos", func() ([]string, error) {
		return r.Repository.Genres(ctx)
	})
}

func (r *cachedRepository) Authors(ctx context.Context) ([]string, error) {
	return r.strings(ctx, "facet:autores", func() ([]string, error) {
		return r.Repository.Authors(ctx)
	})
}

func (r *cachedRepository) books(ctx context.Context, key string, load func() ([]*book.Book, error)) ([]*book.Book, error) {
	if books, ok := r.cache.GetBooks(ctx, key); ok {
		return books, nil
	}
	books, err := load()
	if err != nil {
		return nil, err
	}
	r.cache.SetBooks(ctx, key, books)
	return books, nil
}

func (r *cachedRepository) strings(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	if values, ok := r.cache.GetStrings(ctx, key); ok {
		return values, nil
	}
	values, err := load()
	if err != nil {
		return nil, err
	}
	r.cache.SetStrings(ctx, key, values)
	return values, nil
}

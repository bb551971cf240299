package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现(MySQL、内存、Redis缓存装饰器)
// 文本匹配遵循存储的排序规则：MySQL utf8mb4_unicode_ci 下不区分大小写
type Repository interface {
	// Create 创建图书，回填ID和RegisteredAt
	// ISBN冲突返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 全量更新可变字段
	// 没有匹配行返回ErrBookNotFound，ISBN与其他记录冲突返回ErrISBNDuplicate
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除，记录不存在也返回nil
	Delete(ctx context.Context, id uint) error

	// List 排序+可选子串过滤
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// SearchByTitle 书名子串匹配，按书名升序；空串返回全部
	SearchByTitle(ctx context.Context, term string) ([]*Book, error)

	// FilterByGenre 类型子串匹配，按书名升序
	FilterByGenre(ctx context.Context, term string) ([]*Book, error)

	// FilterByAuthor 作者子串匹配，按书名升序
	FilterByAuthor(ctx context.Context, term string) ([]*Book, error)

	// FilterByStatus 状态精确匹配，按书名升序
	FilterByStatus(ctx context.Context, status string) ([]*Book, error)

	// Genres 去重后的非空类型，字母序
	Genres(ctx context.Context) ([]string, error)

	// Authors 去重后的作者，字母序
	Authors(ctx context.Context) ([]string, error)
}

// Package memory 进程内图书仓储
// 用于 database.driver=memory 的本地运行和测试替身
// 文本比较模拟MySQL utf8mb4_unicode_ci 的大小写不敏感（不处理重音）
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

type bookRepository struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]*book.Book
	now    func() time.Time
}

// NewBookRepository 创建内存仓储
func NewBookRepository() book.Repository {
	return &bookRepository{
		nextID: 1,
		rows:   make(map[uint]*book.Book),
		now:    time.Now,
	}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isbnTaken(b.ISBN, 0) {
		return book.ErrISBNDuplicate
	}

	b.ID = r.nextID
	r.nextID++
	b.RegisteredAt = r.now().Truncate(time.Second)
	r.rows[b.ID] = b.Clone()
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rows[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b.Clone(), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	if r.isbnTaken(b.ISBN, b.ID) {
		return book.ErrISBNDuplicate
	}

	updated := b.Clone()
	updated.RegisteredAt = existing.RegisteredAt
	r.rows[b.ID] = updated
	b.RegisteredAt = existing.RegisteredAt
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	var match func(*book.Book) bool
	if f := params.Filter; f != nil {
		match = func(b *book.Book) bool {
			return containsFold(filterValue(b, f.Column), f.Value)
		}
	}

	books, err := r.selectWhere(ctx, match)
	if err != nil {
		return nil, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = book.DefaultSortColumn
	}
	desc := params.SortOrder == book.Desc
	slices.SortStableFunc(books, func(a, b *book.Book) int {
		c := compareBy(a, b, sortBy)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return books, nil
}

func (r *bookRepository) SearchByTitle(ctx context.Context, term string) ([]*book.Book, error) {
	return r.byTitle(ctx, func(b *book.Book) bool { return containsFold(b.Title, term) })
}

func (r *bookRepository) FilterByGenre(ctx context.Context, term string) ([]*book.Book, error) {
	return r.byTitle(ctx, func(b *book.Book) bool { return containsFold(b.Genre, term) })
}

func (r *bookRepository) FilterByAuthor(ctx context.Context, term string) ([]*book.Book, error) {
	return r.byTitle(ctx, func(b *book.Book) bool { return containsFold(b.Author, term) })
}

func (r *bookRepository) FilterByStatus(ctx context.Context, status string) ([]*book.Book, error) {
	return r.byTitle(ctx, func(b *book.Book) bool { return strings.EqualFold(string(b.Status), status) })
}

func (r *bookRepository) Genres(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, func(b *book.Book) string { return b.Genre })
}

func (r *bookRepository) Authors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, func(b *book.Book) string { return b.Author })
}

// isbnTaken 调用方持有锁；exceptID为当前记录（更新时自身不算冲突）
func (r *bookRepository) isbnTaken(isbn string, exceptID uint) bool {
	for id, b := range r.rows {
		if id != exceptID && strings.EqualFold(b.ISBN, isbn) {
			return true
		}
	}
	return false
}

func (r *bookRepository) selectWhere(ctx context.Context, match func(*book.Book) bool) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.rows))
	for _, b := range r.rows {
		if match == nil || match(b) {
			books = append(books, b.Clone())
		}
	}
	return books, nil
}

func (r *bookRepository) byTitle(ctx context.Context, match func(*book.Book) bool) ([]*book.Book, error) {
	books, err := r.selectWhere(ctx, match)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(books, func(a, b *book.Book) int {
		if c := compareFold(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return books, nil
}

// distinct 按排序规则去重（大小写不同视为同一值，保留先出现的写法）
func (r *bookRepository) distinct(ctx context.Context, field func(*book.Book) string) ([]string, error) {
	books, err := r.selectWhere(ctx, nil)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(books, func(a, b *book.Book) int { return cmp.Compare(a.ID, b.ID) })

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, b := range books {
		v := field(b)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, v)
	}
	slices.SortFunc(values, compareFold)
	return values, nil
}

func filterValue(b *book.Book, col book.FilterColumn) string {
	switch col {
	case book.FilterByTitle:
		return b.Title
	case book.FilterByAuthor:
		return b.Author
	case book.FilterByGenre:
		return b.Genre
	case book.FilterByStatus:
		return string(b.Status)
	case book.FilterByISBN:
		return b.ISBN
	}
	return ""
}

// compareBy NULL年份排在最前，与MySQL升序一致
func compareBy(a, b *book.Book, col book.SortColumn) int {
	switch col {
	case book.SortByTitle:
		return compareFold(a.Title, b.Title)
	case book.SortByAuthor:
		return compareFold(a.Author, b.Author)
	case book.SortByGenre:
		return compareFold(a.Genre, b.Genre)
	case book.SortByYear:
		switch {
		case a.Year == nil && b.Year == nil:
			return 0
		case a.Year == nil:
			return -1
		case b.Year == nil:
			return 1
		}
		return cmp.Compare(*a.Year, *b.Year)
	case book.SortByStatus:
		// ENUM按定义顺序排序
		return cmp.Compare(statusRank(a.Status), statusRank(b.Status))
	case book.SortByRegisteredAt:
		return a.RegisteredAt.Compare(b.RegisteredAt)
	}
	return cmp.Compare(a.ID, b.ID)
}

func statusRank(s book.Status) int {
	for i, st := range book.Statuses() {
		if st == s {
			return i
		}
	}
	return len(book.Statuses())
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

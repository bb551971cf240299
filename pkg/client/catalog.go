package client

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrSuperseded 列表响应到达时已有更新的加载请求，结果被丢弃
var ErrSuperseded = errors.New("biblioteca: superseded by a newer request")

// API Catalog依赖的客户端接口，*Client实现
type API interface {
	List(ctx context.Context, p ListParams) ([]Book, error)
	SearchByTitle(ctx context.Context, term string) ([]Book, error)
	Create(ctx context.Context, d Draft) (*Book, error)
	Update(ctx context.Context, id uint, d Draft) (*Book, error)
	Delete(ctx context.Context, id uint) error
}

// Catalog 前端视角的目录状态
// 1. 列表加载后整体替换；多个加载并发时只采纳最后发起的那个（旧响应丢弃，不取消）
// 2. 增删改成功后直接修改本地列表，不重新拉取
// 3. 同时最多编辑一本书；搜索词和编辑目标互不影响
type Catalog struct {
	api API

	mu      sync.Mutex
	books   []Book
	params  ListParams
	search  string
	editing *Book
	err     error
	seq     uint64
	loading bool
}

// NewCatalog 创建目录状态，默认按id升序
func NewCatalog(api API) *Catalog {
	return &Catalog{
		api:    api,
		books:  []Book{},
		params: ListParams{SortBy: "id", SortOrder: "ASC"},
	}
}

// Load 按当前排序/过滤参数重新加载
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	p := c.params
	c.mu.Unlock()

	return c.reload(ctx, func(ctx context.Context) ([]Book, error) {
		return c.api.List(ctx, p)
	})
}

// SetSort 修改排序并重新加载
func (c *Catalog) SetSort(ctx context.Context, by, order string) error {
	c.mu.Lock()
	c.params.SortBy = by
	c.params.SortOrder = order
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetStatusFilter 按状态过滤并重新加载，空串取消过滤
func (c *Catalog) SetStatusFilter(ctx context.Context, status string) error {
	c.mu.Lock()
	if status == "" {
		c.params.FilterBy, c.params.FilterValue = "", ""
	} else {
		c.params.FilterBy, c.params.FilterValue = "estado", status
	}
	c.mu.Unlock()
	return c.Load(ctx)
}

// Search 按书名搜索；空白词回到普通列表
func (c *Catalog) Search(ctx context.Context, term string) error {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()

	if strings.TrimSpace(term) == "" {
		return c.Load(ctx)
	}
	return c.reload(ctx, func(ctx context.Context) ([]Book, error) {
		return c.api.SearchByTitle(ctx, term)
	})
}

func (c *Catalog) reload(ctx context.Context, fetch func(context.Context) ([]Book, error)) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	books, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return ErrSuperseded
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	if books == nil {
		books = []Book{}
	}
	c.books = books
	return nil
}

// Create 创建成功后插到列表最前
func (c *Catalog) Create(ctx context.Context, d Draft) (*Book, error) {
	b, err := c.api.Create(ctx, d)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.err = err
		return nil, err
	}
	c.err = nil
	c.books = append([]Book{*b}, c.books...)
	return b, nil
}

// Update 更新成功后按id替换
func (c *Catalog) Update(ctx context.Context, id uint, d Draft) (*Book, error) {
	b, err := c.api.Update(ctx, id, d)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.err = err
		return nil, err
	}
	c.err = nil
	for i := range c.books {
		if c.books[i].ID == id {
			c.books[i] = *b
		}
	}
	return b, nil
}

// Delete 删除成功后从列表移除
func (c *Catalog) Delete(ctx context.Context, id uint) error {
	err := c.api.Delete(ctx, id)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.err = err
		return err
	}
	c.err = nil
	kept := c.books[:0:0]
	for _, b := range c.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.books = kept
	if c.editing != nil && c.editing.ID == id {
		c.editing = nil
	}
	return nil
}

// StartEdit 进入编辑模式（替换之前的编辑目标）
func (c *Catalog) StartEdit(b Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &b
}

// CancelEdit 退出编辑模式
func (c *Catalog) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// Editing 当前编辑目标
func (c *Catalog) Editing() (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return Book{}, false
	}
	return *c.editing, true
}

// Submit 表单提交：编辑模式下更新编辑目标，否则创建；成功后退出编辑模式
func (c *Catalog) Submit(ctx context.Context, d Draft) (*Book, error) {
	target, editing := c.Editing()

	var (
		b   *Book
		err error
	)
	if editing {
		b, err = c.Update(ctx, target.ID, d)
	} else {
		b, err = c.Create(ctx, d)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if editing && c.editing != nil && c.editing.ID == target.ID {
		c.editing = nil
	}
	c.mu.Unlock()
	return b, nil
}

// Books 当前列表的副本
func (c *Catalog) Books() []Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Params 当前排序/过滤参数
func (c *Catalog) Params() ListParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// SearchTerm 当前搜索词
func (c *Catalog) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Loading 是否有列表加载在进行
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err 最近一次操作的错误，成功的操作会清空
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

var _ API = (*Client)(nil)

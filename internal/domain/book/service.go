package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 负责默认值和唯一性，不重复做字段形状校验(HTTP层的职责)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// Create 创建图书，状态默认Disponible，返回带ID和登记时间的完整记录
	Create(ctx context.Context, draft Draft) (*Book, error)

	// Update 全量更新，返回更新后的完整记录
	Update(ctx context.Context, id uint, draft Draft) (*Book, error)

	// Delete 删除图书（幂等）
	Delete(ctx context.Context, id uint) error

	// GetByID 根据ID获取图书
	GetByID(ctx context.Context, id uint) (*Book, error)

	List(ctx context.Context, params ListParams) ([]*Book, error)
	SearchByTitle(ctx context.Context, term string) ([]*Book, error)
	FilterByGenre(ctx context.Context, genre string) ([]*Book, error)
	FilterByAuthor(ctx context.Context, author string) ([]*Book, error)
	FilterByStatus(ctx context.Context, status string) ([]*Book, error)
	Genres(ctx context.Context) ([]string, error)
	Authors(ctx context.Context) ([]string, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 创建图书
// ISBN唯一性交给存储层唯一索引，不做先查后写（并发下先查无意义）
func (s *service) Create(ctx context.Context, draft Draft) (*Book, error) {
	b := NewBook(draft)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update 更新图书
// 写入后重新读取，返回数据库中的登记时间
func (s *service) Update(ctx context.Context, id uint, draft Draft) (*Book, error) {
	b := NewBook(draft)
	b.ID = id
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// 更新后被并发删除，按不存在处理
		if errors.Is(err, ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// GetByID 根据ID获取图书
func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}

// SearchByTitle 空串不报错，返回全部
func (s *service) SearchByTitle(ctx context.Context, term string) ([]*Book, error) {
	return s.repo.SearchByTitle(ctx, term)
}

func (s *service) FilterByGenre(ctx context.Context, genre string) ([]*Book, error) {
	return s.repo.FilterByGenre(ctx, genre)
}

func (s *service) FilterByAuthor(ctx context.Context, author string) ([]*Book, error) {
	return s.repo.FilterByAuthor(ctx, author)
}

func (s *service) FilterByStatus(ctx context.Context, status string) ([]*Book, error) {
	return s.repo.FilterByStatus(ctx, status)
}

func (s *service) Genres(ctx context.Context) ([]string, error) {
	return s.repo.Genres(ctx)
}

func (s *service) Authors(ctx context.Context) ([]string, error) {
	return s.repo.Authors(ctx)
}

package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 排序列/方向、过滤列都走白名单，非法值静默回退，不报错
// 2. 没有分页，返回整个目录
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 客户端原始查询参数
type ListBooksRequest struct {
	SortBy      string
	SortOrder   string
	FilterBy    string
	FilterValue string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]BookDTO, error) {
	params := book.NewListParams(req.SortBy, req.SortOrder, req.FilterBy, req.FilterValue)

	var books []*book.Book
	err := observe(ctx, opList, func(ctx context.Context) error {
		var err error
		books, err = uc.bookService.List(ctx, params)
		return err
	},
		attribute.String("sort_by", string(params.SortBy)),
		attribute.String("sort_order", string(params.SortOrder)),
		attribute.Bool("filtered", params.Filter != nil),
	)
	if err != nil {
		return nil, err
	}
	return NewBookDTOs(books), nil
}

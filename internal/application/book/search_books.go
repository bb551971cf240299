package book

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// SearchField 搜索/过滤字段
type SearchField string

const (
	SearchByTitle  SearchField = "titulo" // 子串，空串返回全部
	SearchByGenre  SearchField = "genero" // 子串
	SearchByAuthor SearchField = "autor"  // 子串
	SearchByStatus SearchField = "estado" // 精确匹配（按排序规则不区分大小写）
)

// SearchBooksUseCase 按单个字段搜索/过滤，结果按书名升序
type SearchBooksUseCase struct {
	bookService book.Service
}

func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksRequest 搜索请求
type SearchBooksRequest struct {
	Field SearchField
	Term  string
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) ([]BookDTO, error) {
	var books []*book.Book
	err := observe(ctx, opSearch, func(ctx context.Context) error {
		var err error
		switch req.Field {
		case SearchByTitle:
			books, err = uc.bookService.SearchByTitle(ctx, req.Term)
		case SearchByGenre:
			books, err = uc.bookService.FilterByGenre(ctx, req.Term)
		case SearchByAuthor:
			books, err = uc.bookService.FilterByAuthor(ctx, req.Term)
		case SearchByStatus:
			books, err = uc.bookService.FilterByStatus(ctx, req.Term)
		default:
			err = fmt.Errorf("unknown search field %q", req.Field)
		}
		return err
	}, attribute.String("field", string(req.Field)))
	if err != nil {
		return nil, err
	}
	return NewBookDTOs(books), nil
}

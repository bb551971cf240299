package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 不存在返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	var found *book.Book
	err := observe(ctx, opGet, func(ctx context.Context) error {
		var err error
		found, err = uc.bookService.GetByID(ctx, id)
		return err
	}, attribute.Int64("libro.id", int64(id)))
	if err != nil {
		return nil, err
	}

	dto := NewBookDTO(found)
	return &dto, nil
}

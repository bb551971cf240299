package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// UpdateBookUseCase 全量更新用例（PUT语义，未提交的可选字段回到默认值）
type UpdateBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
	log         *zap.Logger
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(bookService book.Service, events book.EventPublisher, log *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		events:      events,
		log:         log,
	}
}

// Execute 执行更新
// 不存在返回book.ErrBookNotFound，ISBN与其他记录冲突返回book.ErrISBNDuplicate
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req BookInput) (*BookDTO, error) {
	var updated *book.Book
	err := observe(ctx, opUpdate, func(ctx context.Context) error {
		var err error
		updated, err = uc.bookService.Update(ctx, id, req.draft())
		return err
	}, attribute.Int64("libro.id", int64(id)))
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已更新", zap.Uint("libro_id", id))
	publish(ctx, uc.events, uc.log, book.NewEvent(book.EventUpdated, id, updated))

	dto := NewBookDTO(updated)
	return &dto, nil
}

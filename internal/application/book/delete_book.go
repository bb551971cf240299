package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// DeleteBookUseCase 删除用例，幂等：记录不存在也算成功
type DeleteBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
	log         *zap.Logger
}

// NewDeleteBookUseCase 创建用例
func NewDeleteBookUseCase(bookService book.Service, events book.EventPublisher, log *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		events:      events,
		log:         log,
	}
}

// Execute 执行删除
// 存储层不区分"删除了"和"本来就没有"，两种情况都会发布libro.eliminado
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := observe(ctx, opDelete, func(ctx context.Context) error {
		return uc.bookService.Delete(ctx, id)
	}, attribute.Int64("libro.id", int64(id)))
	if err != nil {
		return err
	}

	uc.log.Info("图书已删除", zap.Uint("libro_id", id))
	publish(ctx, uc.events, uc.log, book.NewEvent(book.EventDeleted, id, nil))
	return nil
}

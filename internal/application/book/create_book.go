package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// CreateBookUseCase 登记新书用例
// 流程: 领域服务创建(默认状态、ISBN唯一) → 发布libro.creado事件 → 返回完整记录
type CreateBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
	log         *zap.Logger
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, events book.EventPublisher, log *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		events:      events,
		log:         log,
	}
}

// Execute 执行创建
// ISBN重复返回book.ErrISBNDuplicate
func (uc *CreateBookUseCase) Execute(ctx context.Context, req BookInput) (*BookDTO, error) {
	var created *book.Book
	err := observe(ctx, opCreate, func(ctx context.Context) error {
		var err error
		created, err = uc.bookService.Create(ctx, req.draft())
		return err
	}, attribute.String("libro.isbn", req.ISBN))
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已登记", zap.Uint("libro_id", created.ID), zap.String("isbn", created.ISBN))
	publish(ctx, uc.events, uc.log, book.NewEvent(book.EventCreated, created.ID, created))

	dto := NewBookDTO(created)
	return &dto, nil
}

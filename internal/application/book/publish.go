package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// publish 发布变更事件，失败只记日志，不影响已完成的写操作
func publish(ctx context.Context, events book.EventPublisher, log *zap.Logger, e book.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, e); err != nil {
		log.Warn("发布图书事件失败",
			zap.String("tipo", string(e.Type)),
			zap.Uint("libro_id", e.BookID),
			zap.Error(err),
		)
	}
}

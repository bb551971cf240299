// Package messaging 图书变更事件发布
package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/pkg/metrics"
)

// Publisher 消息发布接口，*mq.Publisher实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookMessage 事件消息体
type BookMessage struct {
	Type       string       `json:"tipo"`
	BookID     uint         `json:"libro_id"`
	Book       *BookPayload `json:"libro,omitempty"`
	OccurredAt time.Time    `json:"ocurrido_en"`
}

// BookPayload 消息中的图书快照，字段名与HTTP接口一致
type BookPayload struct {
	ID           uint      `json:"id"`
	Title        string    `json:"titulo"`
	Author       string    `json:"autor"`
	Genre        string    `json:"genero"`
	Year         *int      `json:"anio"`
	ISBN         string    `json:"isbn"`
	Status       string    `json:"estado"`
	ImageURL     *string   `json:"imagen_url"`
	RegisteredAt time.Time `json:"fecha_registro"`
}

// NewBookMessage 事件转消息
func NewBookMessage(e book.Event) BookMessage {
	msg := BookMessage{
		Type:       string(e.Type),
		BookID:     e.BookID,
		OccurredAt: e.OccurredAt.UTC(),
	}
	if b := e.Book; b != nil {
		msg.Book = &BookPayload{
			ID:           b.ID,
			Title:        b.Title,
			Author:       b.Author,
			Genre:        b.Genre,
			Year:         b.Year,
			ISBN:         b.ISBN,
			Status:       b.Status.String(),
			ImageURL:     b.ImageURL,
			RegisteredAt: b.RegisteredAt,
		}
	}
	return msg
}

// BookEventPublisher 把图书事件发到Topic Exchange，routing key即事件类型
type BookEventPublisher struct {
	publisher Publisher
	timeout   time.Duration
	log       *zap.Logger
}

// NewBookEventPublisher 创建图书事件发布者
func NewBookEventPublisher(publisher Publisher, log *zap.Logger) *BookEventPublisher {
	return &BookEventPublisher{
		publisher: publisher,
		timeout:   3 * time.Second,
		log:       log.Named("events"),
	}
}

// Publish 发布事件
func (p *BookEventPublisher) Publish(ctx context.Context, e book.Event) error {
	// 请求结束不应取消已提交变更的通知
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	key := string(e.Type)
	if err := p.publisher.Publish(ctx, key, NewBookMessage(e)); err != nil {
		metrics.IncCounterVec(metrics.EventsPublishedTotal, key, "error")
		return err
	}

	metrics.IncCounterVec(metrics.EventsPublishedTotal, key, "success")
	p.log.Debug("图书事件已发布", zap.String("tipo", key), zap.Uint("libro_id", e.BookID))
	return nil
}

// NoopPublisher 未启用事件时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, book.Event) error { return nil }

var (
	_ book.EventPublisher = (*BookEventPublisher)(nil)
	_ book.EventPublisher = NoopPublisher{}
)

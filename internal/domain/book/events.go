package book

import (
	"context"
	"time"
)

// EventType 图书变更事件类型，同时作为MQ的routing key
type EventType string

const (
	EventCreated EventType = "libro.creado"
	EventUpdated EventType = "libro.actualizado"
	EventDeleted EventType = "libro.eliminado"
)

// Event 图书变更事件
// 删除事件不携带Book
type Event struct {
	Type       EventType
	BookID     uint
	Book       *Book
	OccurredAt time.Time
}

// NewEvent 创建事件
func NewEvent(t EventType, id uint, b *Book) Event {
	return Event{
		Type:       t,
		BookID:     id,
		Book:       b.Clone(),
		OccurredAt: time.Now(),
	}
}

// EventPublisher 事件发布接口，由infrastructure/messaging实现
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/internal/infrastructure/messaging"
)

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := logEvent(zap.New(core))

	b := book.NewBook(book.Draft{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"})
	b.ID = 7
	body, err := json.Marshal(messaging.NewBookMessage(book.NewEvent(book.EventCreated, b.ID, b)))
	require.NoError(t, err)

	require.NoError(t, handle(context.Background(), "libro.creado", body))
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "libro.creado", fields["tipo"])
	assert.Equal(t, uint64(7), fields["libro_id"])
	assert.Equal(t, "Dune", fields["titulo"])
	assert.Equal(t, "Disponible", fields["estado"])
}

func TestLogEvent_DeleteHasNoBook(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := logEvent(zap.New(core))

	body, err := json.Marshal(messaging.BookMessage{Type: "libro.eliminado", BookID: 3, OccurredAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, handle(context.Background(), "libro.eliminado", body))
	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "titulo")
}

func TestLogEvent_MalformedIsAcked(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := logEvent(zap.New(core))

	assert.NoError(t, handle(context.Background(), "libro.creado", []byte("{")))
	assert.Equal(t, 1, logs.FilterMessage("无法解析的事件").Len())
}

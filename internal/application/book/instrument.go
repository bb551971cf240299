package book

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/pkg/metrics"
	"github.com/xiebiao/biblioteca/pkg/tracing"
)

const tracerName = "biblioteca/application/book"

// 操作名，同时用作Span名和指标标签
const (
	opCreate  = "create"
	opUpdate  = "update"
	opDelete  = "delete"
	opGet     = "get"
	opList    = "list"
	opSearch  = "search"
	opGenres  = "genres"
	opAuthors = "authors"
)

// observe 给用例套上Span和操作指标
func observe(ctx context.Context, op string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book."+op)
	span.SetAttributes(attrs...)
	start := time.Now()

	defer func() {
		metrics.ObserveHistogramVec(metrics.BookOperationDuration, time.Since(start).Seconds(), op)
		metrics.IncCounterVec(metrics.BookOperationsTotal, op, result(err))
		// 业务上的"不存在""重复"不算Span错误
		if err != nil && result(err) == "error" {
			tracing.EndSpan(span, err)
			return
		}
		tracing.EndSpan(span, nil)
	}()

	return fn(ctx)
}

func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, book.ErrBookNotFound):
		return "not_found"
	case errors.Is(err, book.ErrISBNDuplicate):
		return "conflict"
	default:
		return "error"
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
	"github.com/xiebiao/biblioteca/pkg/response"
	"github.com/xiebiao/biblioteca/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID响应头，客户端传入时沿用
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey gin.Context中的请求ID
	RequestIDKey = "request_id"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 1. 生成（或沿用）请求ID，写入响应头
// 2. 把带request_id的logger放进Context，response.Error记录5xx时使用
// 3. 请求结束后输出一条结构化访问日志，慢请求额外告警
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With(zap.String("request_id", requestID))
		c.Set(response.LoggerContextKey, reqLog)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if err, ok := c.Get(response.ErrorContextKey); ok {
			if e, ok := err.(error); ok {
				fields = append(fields, zap.NamedError("cause", e))
			}
		}

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		reqLog.Log(level, "http request", fields...)

		if latency > slowRequestThreshold {
			reqLog.Warn("slow request",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("latency", latency),
			)
		}
	}
}

// Recovery panic恢复，返回统一的500
// 需注册在Logger之后：panic日志带request_id，访问日志照常输出
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestLogger(c, log).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		response.Error(c, apperrors.ErrInternal)
	})
}

func requestLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get(response.LoggerContextKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// ErrorBody 错误响应结构
// 成功响应直接返回资源本身（对象或数组），不再套一层信封
type ErrorBody struct {
	Code    int                    `json:"code"`
	Error   string                 `json:"error"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// OK 200 + 数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 + 新建资源
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 5xx 的内部原因只写日志，客户端统一看到 "Error servidor"
//
//	book, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	body := ErrorBody{
		Code:    appErr.Code,
		Error:   appErr.Message,
		Details: appErr.Details,
	}

	if status >= http.StatusInternalServerError {
		logger(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		body.Error = apperrors.ErrInternal.Message
		body.Details = nil
	}

	c.Set(ErrorContextKey, err)
	c.AbortWithStatusJSON(status, body)
}

const (
	// LoggerContextKey 中间件注入的请求级logger
	LoggerContextKey = "logger"
	// ErrorContextKey 访问日志读取的原始错误
	ErrorContextKey = "error"
)

func logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerContextKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

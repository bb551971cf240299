package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// Code 为业务错误码，前三位即HTTP状态码（40402 -> 404）
// Err 为内部错误，只写日志，不返回给客户端
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，预定义错误被Wrap后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 业务码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// WithDetails 返回附带字段错误的副本，不修改预定义错误
func (e *AppError) WithDetails(details ...FieldError) *AppError {
	cp := *e
	cp.Details = append([]FieldError(nil), details...)
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数校验失败
// - 404xx: 资源不存在
// - 409xx: 唯一约束冲突
// - 429xx: 限流
// - 500xx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误

	// 参数错误（40000-40099）
	ErrCodeInvalidParams = 40000 // 参数校验失败
	ErrCodeBindError     = 40001 // 请求体格式错误
	ErrCodeInvalidID     = 40002 // 路径ID非法

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeRouteNotFound = 40401 // 路由不存在
	ErrCodeBookNotFound  = 40402 // 图书不存在

	// 冲突（40900-40999）
	ErrCodeDuplicateEntry = 40900 // 重复记录(通用)
	ErrCodeISBNDuplicate  = 40901 // ISBN已存在

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误
// =========================================
// Message 直接返回给客户端，沿用前端已有的西班牙语文案

var (
	ErrInternal = New(ErrCodeInternal, "Error servidor")

	ErrInvalidParams = New(ErrCodeInvalidParams, "Datos inválidos")
	ErrBindError     = New(ErrCodeBindError, "Datos inválidos")
	ErrInvalidID     = New(ErrCodeInvalidID, "ID inválido")

	ErrRouteNotFound = New(ErrCodeRouteNotFound, "Not found")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Demasiadas solicitudes")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// HTTPStatus 业务码转HTTP状态码，未知码一律500
func HTTPStatus(code int) int {
	status := code / 100
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		return http.StatusInternalServerError
	}
	return status
}

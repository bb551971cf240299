package book

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在（查询、更新时返回；删除是幂等的，不返回）
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Libro no encontrado")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN duplicado")
)

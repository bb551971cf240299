package book

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// FacetsUseCase 目录维度：全部类型、全部作者（去重、字母序）
type FacetsUseCase struct {
	bookService book.Service
}

func NewFacetsUseCase(bookService book.Service) *FacetsUseCase {
	return &FacetsUseCase{bookService: bookService}
}

// Genres 非空类型列表
func (uc *FacetsUseCase) Genres(ctx context.Context) ([]string, error) {
	return uc.facet(ctx, opGenres, uc.bookService.Genres)
}

// Authors 作者列表
func (uc *FacetsUseCase) Authors(ctx context.Context) ([]string, error) {
	return uc.facet(ctx, opAuthors, uc.bookService.Authors)
}

func (uc *FacetsUseCase) facet(ctx context.Context, op string, load func(context.Context) ([]string, error)) ([]string, error) {
	var values []string
	err := observe(ctx, op, func(ctx context.Context) error {
		var err error
		values, err = load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

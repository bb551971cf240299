package book

import (
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// BookInput 创建/更新时客户端提交的字段
// 字段形状已在HTTP层校验
type BookInput struct {
	Title    string
	Author   string
	Genre    string
	Year     *int
	ISBN     string
	Status   string // 为空时使用默认状态
	ImageURL *string
}

func (in BookInput) draft() book.Draft {
	return book.Draft{
		Title:    in.Title,
		Author:   in.Author,
		Genre:    in.Genre,
		Year:     in.Year,
		ISBN:     in.ISBN,
		Status:   book.Status(in.Status),
		ImageURL: in.ImageURL,
	}
}

// BookDTO 图书响应DTO，JSON字段名与前端约定一致
type BookDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"titulo"`
	Author       string    `json:"autor"`
	Genre        string    `json:"genero"`
	Year         *int      `json:"anio"`
	ISBN         string    `json:"isbn"`
	Status       string    `json:"estado"`
	ImageURL     *string   `json:"imagen_url,omitempty"`
	RegisteredAt time.Time `json:"fecha_registro"`
}

// NewBookDTO 实体转DTO
func NewBookDTO(b *book.Book) BookDTO {
	return BookDTO{
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

// NewBookDTOs 列表转换，空结果返回空数组而不是null
func NewBookDTOs(books []*book.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookDTO(b))
	}
	return out
}

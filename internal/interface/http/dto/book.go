package dto

import (
	appbook "github.com/xiebiao/biblioteca/internal/application/book"
)

// BookRequest 创建/更新图书请求体（PUT也是全量，字段相同）
// validator tag说明:
// - notblank: 去掉首尾空白后非空（自定义）
// - anio: 1000 到 明年 之间的整数（自定义）
// - estado: Disponible | Prestado | En reparación（自定义）
// - imagen_url为空串视为未设置
type BookRequest struct {
	Title    string `json:"titulo" binding:"required,notblank,max=255" example:"Dune"`
	Author   string `json:"autor" binding:"required,notblank,max=255" example:"Frank Herbert"`
	Genre    string `json:"genero" binding:"max=100" example:"Ciencia ficción"`
	Year     *int   `json:"anio" binding:"omitempty,anio" example:"1965"`
	ISBN     string `json:"isbn" binding:"required,notblank,min=10,max=20" example:"9780441013593"`
	Status   string `json:"estado" binding:"omitempty,estado" example:"Disponible" enums:"Disponible,Prestado,En reparación"`
	ImageURL string `json:"imagen_url" binding:"omitempty,url,max=500" example:"https://covers.openlibrary.org/b/isbn/9780441013593-L.jpg"`
}

// ToInput 转应用层输入
func (r BookRequest) ToInput() appbook.BookInput {
	in := appbook.BookInput{
		Title:  r.Title,
		Author: r.Author,
		Genre:  r.Genre,
		Year:   r.Year,
		ISBN:   r.ISBN,
		Status: r.Status,
	}
	if r.ImageURL != "" {
		u := r.ImageURL
		in.ImageURL = &u
	}
	return in
}

// ListBooksQuery GET /api/libros 查询参数
// 不做binding校验：非法的排序/过滤参数静默回退
type ListBooksQuery struct {
	SortBy      string `form:"sortBy" example:"titulo"`
	SortOrder   string `form:"sortOrder" example:"ASC"`
	FilterBy    string `form:"filterBy" example:"autor"`
	FilterValue string `form:"filterValue" example:"Herbert"`
}

// BookIDUri 路径参数
type BookIDUri struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

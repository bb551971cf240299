package mysql

import (
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

const tableLibros = "libros"

// LibroModel GORM图书模型，对应migrations/00001_create_libros.sql
// 设计说明:
// 1. 这是infrastructure层的数据模型，domain/book.Book不依赖GORM
// 2. ISBN唯一索引是并发创建时唯一的防重手段
// 3. 登记时间只在插入时写入
type LibroModel struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:titulo;size:255;not null;index;comment:书名"`
	Author       string    `gorm:"column:autor;size:255;not null;index;comment:作者"`
	Genre        string    `gorm:"column:genero;size:100;not null;default:'';comment:类型"`
	Year         *int      `gorm:"column:anio;comment:出版年份"`
	ISBN         string    `gorm:"column:isbn;size:20;not null;uniqueIndex:uk_libros_isbn;comment:ISBN号"`
	Status       string    `gorm:"column:estado;not null;default:Disponible;comment:借阅状态"`
	ImageURL     *string   `gorm:"column:imagen_url;size:500;comment:封面图片URL"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;autoCreateTime;<-:create;comment:登记时间"`
}

// TableName 指定表名
func (LibroModel) TableName() string {
	return tableLibros
}

// selectColumns 查询时显式列出的列
var selectColumns = []string{
	"id", "titulo", "autor", "genero", "anio", "isbn", "estado", "imagen_url", "fecha_registro",
}

// toModel 领域实体 → GORM模型
func toModel(b *book.Book) *LibroModel {
	return &LibroModel{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Genre:        b.Genre,
		Year:         b.Year,
		ISBN:         b.ISBN,
		Status:       string(b.Status),
		ImageURL:     b.ImageURL,
		RegisteredAt: b.RegisteredAt,
	}
}

// toEntity GORM模型 → 领域实体
func toEntity(m *LibroModel) *book.Book {
	return &book.Book{
		ID:           m.ID,
		Title:        m.Title,
		Author:       m.Author,
		Genre:        m.Genre,
		Year:         m.Year,
		ISBN:         m.ISBN,
		Status:       book.Status(m.Status),
		ImageURL:     m.ImageURL,
		RegisteredAt: m.RegisteredAt,
	}
}

func toEntities(models []LibroModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toEntity(&models[i])
	}
	return books
}

package book

import (
	"regexp"
	"strings"
	"time"
)

// Status 图书借阅状态
type Status string

const (
	StatusAvailable Status = "Disponible"
	StatusBorrowed  Status = "Prestado"
	StatusInRepair  Status = "En reparación"
)

// DefaultStatus 创建/更新时未指定状态的默认值
const DefaultStatus = StatusAvailable

// Statuses 全部合法状态（与数据库ENUM顺序一致）
func Statuses() []Status {
	return []Status{StatusAvailable, StatusBorrowed, StatusInRepair}
}

// Valid 是否为合法状态（区分大小写，与写入数据库的值一致）
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusInRepair:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 单表模型，无关联实体
// 2. ISBN作为业务唯一标识(数据库唯一索引保证)
// 3. ID、RegisteredAt由存储层分配，创建后不可变
type Book struct {
	ID           uint
	Title        string  // 书名
	Author       string  // 作者
	Genre        string  // 类型，可为空串
	Year         *int    // 出版年份，未知为nil
	ISBN         string  // ISBN号
	Status       Status  // 借阅状态
	ImageURL     *string // 封面图URL，未设置为nil
	RegisteredAt time.Time
}

// Draft 创建/全量更新时客户端可写的字段
// 形状校验在HTTP层完成，这里只做默认值处理
type Draft struct {
	Title    string
	Author   string
	Genre    string
	Year     *int
	ISBN     string
	Status   Status
	ImageURL *string
}

// NewBook 创建新图书(工厂方法)
// 状态为空时默认Disponible
func NewBook(d Draft) *Book {
	b := &Book{}
	b.Apply(d)
	return b
}

// Apply 全量替换可变字段（PUT语义，没有部分更新）
// 未提供的状态回到默认值，空的封面URL视为未设置
func (b *Book) Apply(d Draft) {
	b.Title = d.Title
	b.Author = d.Author
	b.Genre = d.Genre
	b.Year = cloneInt(d.Year)
	b.ISBN = d.ISBN
	b.Status = d.Status
	if b.Status == "" {
		b.Status = DefaultStatus
	}
	b.ImageURL = nil
	if d.ImageURL != nil && *d.ImageURL != "" {
		u := *d.ImageURL
		b.ImageURL = &u
	}
}

// Clone 深拷贝，内存仓储和缓存返回副本避免共享指针
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Year = cloneInt(b.Year)
	if b.ImageURL != nil {
		u := *b.ImageURL
		cp.ImageURL = &u
	}
	return &cp
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

var nonISBNChars = regexp.MustCompile(`[^0-9Xx]`)

// CoverURL 展示用封面：优先使用imagen_url，否则按ISBN取Open Library封面
// ISBN清洗后不是10位或13位时返回空串
func CoverURL(b *Book) string {
	if b == nil {
		return ""
	}
	if b.ImageURL != nil && *b.ImageURL != "" {
		return *b.ImageURL
	}
	isbn := strings.ToUpper(nonISBNChars.ReplaceAllString(b.ISBN, ""))
	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return "https://covers.openlibrary.org/b/isbn/" + isbn + "-L.jpg"
}

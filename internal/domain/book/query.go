package book

import (
	"strings"
)

// SortColumn 允许排序的列
// 列名只能来自这里的常量，客户端传入的原始字符串永远不会拼进SQL
type SortColumn string

const (
	SortByID           SortColumn = "id"
	SortByTitle        SortColumn = "titulo"
	SortByAuthor       SortColumn = "autor"
	SortByGenre        SortColumn = "genero"
	SortByYear         SortColumn = "anio"
	SortByStatus       SortColumn = "estado"
	SortByRegisteredAt SortColumn = "fecha_registro"
)

// DefaultSortColumn 非法排序列的回退值
const DefaultSortColumn = SortByID

var sortColumns = map[string]SortColumn{
	string(SortByID):           SortByID,
	string(SortByTitle):        SortByTitle,
	string(SortByAuthor):       SortByAuthor,
	string(SortByGenre):        SortByGenre,
	string(SortByYear):         SortByYear,
	string(SortByStatus):       SortByStatus,
	string(SortByRegisteredAt): SortByRegisteredAt,
}

// ParseSortColumn 不在白名单内的值静默回退为id
func ParseSortColumn(s string) SortColumn {
	if col, ok := sortColumns[s]; ok {
		return col
	}
	return DefaultSortColumn
}

// SortOrder 排序方向
type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ParseSortOrder 不区分大小写，其他值回退为ASC
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// FilterColumn 允许做子串过滤的列
type FilterColumn string

const (
	FilterByTitle  FilterColumn = "titulo"
	FilterByAuthor FilterColumn = "autor"
	FilterByGenre  FilterColumn = "genero"
	FilterByStatus FilterColumn = "estado"
	FilterByISBN   FilterColumn = "isbn"
)

var filterColumns = map[string]FilterColumn{
	string(FilterByTitle):  FilterByTitle,
	string(FilterByAuthor): FilterByAuthor,
	string(FilterByGenre):  FilterByGenre,
	string(FilterByStatus): FilterByStatus,
	string(FilterByISBN):   FilterByISBN,
}

// ParseFilterColumn 返回列和是否合法
// 与排序列同一策略：非法列不报错，调用方当作"不过滤"
func ParseFilterColumn(s string) (FilterColumn, bool) {
	col, ok := filterColumns[s]
	return col, ok
}

// Filter 子串过滤条件
type Filter struct {
	Column FilterColumn
	Value  string
}

// ListParams 列表查询参数（已完成白名单解析）
type ListParams struct {
	SortBy    SortColumn
	SortOrder SortOrder
	Filter    *Filter // nil表示不过滤
}

// NewListParams 从客户端原始参数构造
// filterBy和filterValue都非空且列合法时才产生过滤条件
func NewListParams(sortBy, sortOrder, filterBy, filterValue string) ListParams {
	p := ListParams{
		SortBy:    ParseSortColumn(sortBy),
		SortOrder: ParseSortOrder(sortOrder),
	}
	if filterBy == "" || filterValue == "" {
		return p
	}
	if col, ok := ParseFilterColumn(filterBy); ok {
		p.Filter = &Filter{Column: col, Value: filterValue}
	}
	return p
}

// Key 规范化后的参数串，等价的查询得到相同的key（缓存用）
func (p ListParams) Key() string {
	sortBy, order := p.SortBy, p.SortOrder
	if sortBy == "" {
		sortBy = DefaultSortColumn
	}
	if order == "" {
		order = Asc
	}
	key := string(sortBy) + ":" + string(order)
	if p.Filter != nil {
		key += ":" + string(p.Filter.Column) + "=" + p.Filter.Value
	}
	return key
}

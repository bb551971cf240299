package mysql

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// 目录查询构建
// 列名只来自domain/book中的白名单常量，用户输入一律作为占位符参数

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func selectLibros() sq.SelectBuilder {
	return qb.Select(selectColumns...).From(tableLibros)
}

// orderBy 非id列追加id作为次序，保证相同值的行顺序稳定
func orderBy(col book.SortColumn, dir book.SortOrder) []string {
	if col == "" {
		col = book.DefaultSortColumn
	}
	if dir != book.Desc {
		dir = book.Asc
	}
	clauses := []string{string(col) + " " + string(dir)}
	if col != book.SortByID {
		clauses = append(clauses, "id ASC")
	}
	return clauses
}

// listQuery SELECT ... [WHERE col LIKE ?] ORDER BY col dir
func listQuery(p book.ListParams) (string, []interface{}, error) {
	q := selectLibros()
	if f := p.Filter; f != nil {
		q = q.Where(sq.Like{string(f.Column): containsPattern(f.Value)})
	}
	return q.OrderBy(orderBy(p.SortBy, p.SortOrder)...).ToSql()
}

// containsQuery 单列子串匹配，按书名升序
func containsQuery(col book.FilterColumn, term string) (string, []interface{}, error) {
	q := selectLibros()
	if term != "" {
		q = q.Where(sq.Like{string(col): containsPattern(term)})
	}
	return q.OrderBy(orderBy(book.SortByTitle, book.Asc)...).ToSql()
}

// statusQuery 状态精确匹配，按书名升序
func statusQuery(status string) (string, []interface{}, error) {
	return selectLibros().
		Where(sq.Eq{string(book.FilterByStatus): status}).
		OrderBy(orderBy(book.SortByTitle, book.Asc)...).
		ToSql()
}

// distinctQuery 一次查询取出某列的全部去重值，空串和NULL不参与
func distinctQuery(col book.SortColumn) (string, []interface{}, error) {
	c := string(col)
	return qb.Select(c).Distinct().From(tableLibros).
		Where(sq.NotEq{c: ""}).
		OrderBy(c + " ASC").
		ToSql()
}

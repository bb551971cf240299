package mysql

import (
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

const cols = "id, titulo, autor, genero, anio, isbn, estado, imagen_url, fecha_registro"

func TestListQuery(t *testing.T) {
	tests := []struct {
		name     string
		params   book.ListParams
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:    "defaults",
			params:  book.NewListParams("", "", "", ""),
			wantSQL: "SELECT " + cols + " FROM libros ORDER BY id ASC",
		},
		{
			name:    "sort desc adds id tiebreaker",
			params:  book.NewListParams("anio", "DESC", "", ""),
			wantSQL: "SELECT " + cols + " FROM libros ORDER BY anio DESC, id ASC",
		},
		{
			name:     "filter",
			params:   book.NewListParams("titulo", "asc", "genero", "SciFi"),
			wantSQL:  "SELECT " + cols + " FROM libros WHERE genero LIKE ? ORDER BY titulo ASC, id ASC",
			wantArgs: []interface{}{"%SciFi%"},
		},
		{
			name:     "wildcards in value are literal",
			params:   book.NewListParams("", "", "titulo", `50%_off\`),
			wantSQL:  "SELECT " + cols + " FROM libros WHERE titulo LIKE ? ORDER BY id ASC",
			wantArgs: []interface{}{`%50\%\_off\\%`},
		},
		{
			name:    "zero value params",
			params:  book.ListParams{},
			wantSQL: "SELECT " + cols + " FROM libros ORDER BY id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listQuery(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestListQuery_FallbacksProduceIdenticalSQL(t *testing.T) {
	want, _, err := listQuery(book.NewListParams("id", "ASC", "", ""))
	require.NoError(t, err)

	for _, p := range []book.ListParams{
		book.NewListParams("nonexistent_column", "ASC", "", ""),
		book.NewListParams("id", "sideways", "", ""),
		book.NewListParams("titulo; DROP TABLE libros", "asc; --", "isbn) OR (1=1", "x"),
	} {
		got, args, err := listQuery(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Empty(t, args)
	}
}

func TestContainsQuery(t *testing.T) {
	sql, args, err := containsQuery(book.FilterByTitle, "dune")
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+cols+" FROM libros WHERE titulo LIKE ? ORDER BY titulo ASC, id ASC", sql)
	assert.Equal(t, []interface{}{"%dune%"}, args)

	sql, args, err = containsQuery(book.FilterByTitle, "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+cols+" FROM libros ORDER BY titulo ASC, id ASC", sql)
	assert.Empty(t, args)
}

func TestStatusQuery(t *testing.T) {
	sql, args, err := statusQuery("Prestado")
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+cols+" FROM libros WHERE estado = ? ORDER BY titulo ASC, id ASC", sql)
	assert.Equal(t, []interface{}{"Prestado"}, args)
}

func TestDistinctQuery(t *testing.T) {
	sql, args, err := distinctQuery(book.SortByGenre)
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT genero FROM libros WHERE genero <> ? ORDER BY genero ASC", sql)
	assert.Equal(t, []interface{}{""}, args)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(fmt.Errorf("insert: %w", &driver.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	assert.False(t, isDuplicateError(&driver.MySQLError{Number: 1054, Message: "Unknown column"}))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry '978' for key 'uk_libros_isbn'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
	assert.False(t, isDuplicateError(nil))
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

func intPtr(v int) *int { return &v }

func seed(t *testing.T, repo book.Repository, drafts ...book.Draft) []*book.Book {
	t.Helper()
	out := make([]*book.Book, 0, len(drafts))
	for _, d := range drafts {
		b := book.NewBook(d)
		require.NoError(t, repo.Create(context.Background(), b))
		out = append(out, b)
	}
	return out
}

func catalog() []book.Draft {
	return []book.Draft{
		{Title: "Dune", Author: "Frank Herbert", Genre: "SciFi", Year: intPtr(1965), ISBN: "9780441013593"},
		{Title: "Cien años de soledad", Author: "Gabriel García Márquez", Genre: "Novela", Year: intPtr(1967), ISBN: "9780307474728", Status: book.StatusBorrowed},
		{Title: "El Aleph", Author: "Jorge Luis Borges", Genre: "Cuento", ISBN: "9788420633114", Status: book.StatusInRepair},
		{Title: "Children of Dune", Author: "Frank Herbert", Genre: "scifi", Year: intPtr(1976), ISBN: "9780593098240"},
	}
}

func titles(books []*book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewBookRepository()
	books := seed(t, repo, catalog()...)

	assert.Equal(t, uint(1), books[0].ID)
	assert.Equal(t, uint(4), books[3].ID)
	assert.False(t, books[0].RegisteredAt.IsZero())
	assert.Equal(t, book.StatusAvailable, books[0].Status)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	repo := NewBookRepository()
	seed(t, repo, catalog()[0])

	err := repo.Create(context.Background(), book.NewBook(book.Draft{Title: "Otro", Author: "X", ISBN: "9780441013593"}))
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)
}

func TestIDsAreNotReused(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	books := seed(t, repo, catalog()[:2]...)

	require.NoError(t, repo.Delete(ctx, books[1].ID))
	next := seed(t, repo, catalog()[2])
	assert.Equal(t, uint(3), next[0].ID)
}

func TestUpdate(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	books := seed(t, repo, catalog()[:2]...)

	t.Run("not found", func(t *testing.T) {
		b := book.NewBook(catalog()[2])
		b.ID = 99
		assert.ErrorIs(t, repo.Update(ctx, b), book.ErrBookNotFound)
	})

	t.Run("isbn collision with another record", func(t *testing.T) {
		b := book.NewBook(catalog()[0])
		b.ID = books[0].ID
		b.ISBN = books[1].ISBN
		assert.ErrorIs(t, repo.Update(ctx, b), book.ErrISBNDuplicate)
	})

	t.Run("same isbn on itself keeps registration time", func(t *testing.T) {
		d := catalog()[0]
		d.Status = book.StatusBorrowed
		b := book.NewBook(d)
		b.ID = books[0].ID
		require.NoError(t, repo.Update(ctx, b))

		got, err := repo.FindByID(ctx, books[0].ID)
		require.NoError(t, err)
		assert.Equal(t, book.StatusBorrowed, got.Status)
		assert.Equal(t, books[0].RegisteredAt, got.RegisteredAt)
	})
}

func TestDelete_Idempotent(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	books := seed(t, repo, catalog()[0])

	require.NoError(t, repo.Delete(ctx, books[0].ID))
	require.NoError(t, repo.Delete(ctx, books[0].ID))
	require.NoError(t, repo.Delete(ctx, 12345))

	_, err := repo.FindByID(ctx, books[0].ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestFindByID_ReturnsCopy(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	books := seed(t, repo, catalog()[0])

	got, err := repo.FindByID(ctx, books[0].ID)
	require.NoError(t, err)
	*got.Year = 2000
	got.Title = "changed"

	again, err := repo.FindByID(ctx, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", again.Title)
	assert.Equal(t, 1965, *again.Year)
}

func TestList(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	seed(t, repo, catalog()...)

	tests := []struct {
		name   string
		params book.ListParams
		want   []string
	}{
		{
			name:   "default id asc",
			params: book.NewListParams("", "", "", ""),
			want:   []string{"Dune", "Cien años de soledad", "El Aleph", "Children of Dune"},
		},
		{
			name:   "unknown column falls back to id",
			params: book.NewListParams("precio; DROP TABLE libros", "", "", ""),
			want:   []string{"Dune", "Cien años de soledad", "El Aleph", "Children of Dune"},
		},
		{
			name:   "year desc, null last",
			params: book.NewListParams("anio", "desc", "", ""),
			want:   []string{"Children of Dune", "Cien años de soledad", "Dune", "El Aleph"},
		},
		{
			name:   "unknown order falls back to asc",
			params: book.NewListParams("titulo", "sideways", "", ""),
			want:   []string{"Children of Dune", "Cien años de soledad", "Dune", "El Aleph"},
		},
		{
			name:   "substring filter is case-insensitive",
			params: book.NewListParams("id", "ASC", "autor", "herbert"),
			want:   []string{"Dune", "Children of Dune"},
		},
		{
			name:   "filter needs both column and value",
			params: book.NewListParams("id", "ASC", "autor", ""),
			want:   []string{"Dune", "Cien años de soledad", "El Aleph", "Children of Dune"},
		},
		{
			name:   "unknown filter column is ignored",
			params: book.NewListParams("id", "ASC", "precio", "10"),
			want:   []string{"Dune", "Cien años de soledad", "El Aleph", "Children of Dune"},
		},
		{
			name:   "status sorts by enum order",
			params: book.NewListParams("estado", "ASC", "", ""),
			want:   []string{"Dune", "Children of Dune", "Cien años de soledad", "El Aleph"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo := NewBookRepository()
	got, err := repo.List(context.Background(), book.NewListParams("", "", "titulo", "nada"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchAndFilters(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	seed(t, repo, catalog()...)

	got, err := repo.SearchByTitle(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Children of Dune", "Dune"}, titles(got))

	got, err = repo.SearchByTitle(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = repo.FilterByGenre(ctx, "SCI")
	require.NoError(t, err)
	assert.Equal(t, []string{"Children of Dune", "Dune"}, titles(got))

	got, err = repo.FilterByAuthor(ctx, "borges")
	require.NoError(t, err)
	assert.Equal(t, []string{"El Aleph"}, titles(got))

	// 状态是精确匹配：子串不命中
	got, err = repo.FilterByStatus(ctx, "Prest")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FilterByStatus(ctx, "Prestado")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cien años de soledad"}, titles(got))

	// 排序规则不区分大小写
	got, err = repo.FilterByStatus(ctx, "prestado")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cien años de soledad"}, titles(got))
}

func TestFacets(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	seed(t, repo, catalog()...)
	seed(t, repo, book.Draft{Title: "Sin género", Author: "Anónimo", ISBN: "1234567890"})

	genres, err := repo.Genres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cuento", "Novela", "SciFi"}, genres)

	authors, err := repo.Authors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Anónimo", "Frank Herbert", "Gabriel García Márquez", "Jorge Luis Borges"}, authors)
}

func TestCanceledContext(t *testing.T) {
	repo := NewBookRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, book.ListParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

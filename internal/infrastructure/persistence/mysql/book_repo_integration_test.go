//go:build integration

package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"go.uber.org/zap"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
)

// setupRepo 启动MySQL容器并执行迁移
// 运行：go test -tags integration ./internal/infrastructure/persistence/mysql/...
func setupRepo(t *testing.T) book.Repository {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx,
		"mysql:8.0.36",
		tcmysql.WithDatabase("biblioteca"),
		tcmysql.WithUsername("biblioteca"),
		tcmysql.WithPassword("secret"),
	)
	require.NoError(t, err, "启动MySQL容器失败")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver: config.DriverMySQL, Host: host, Port: port.Int(),
			User: "biblioteca", Password: "secret", DBName: "biblioteca",
			Charset: "utf8mb4", ParseTime: true, Loc: "Local",
			MaxOpenConns: 10, MaxIdleConns: 5, MigrateOnStart: true,
		},
	}

	db, cleanup, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewBookRepository(db)
}

func intPtr(v int) *int { return &v }

func TestBookRepository_Integration(t *testing.T) {
	repo := setupRepo(t)
	svc := book.NewService(repo)
	ctx := context.Background()

	dune, err := svc.Create(ctx, book.Draft{
		Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: intPtr(1965), ISBN: "9780441013593",
	})
	require.NoError(t, err)
	assert.NotZero(t, dune.ID)
	assert.Equal(t, book.StatusAvailable, dune.Status)
	assert.False(t, dune.RegisteredAt.IsZero())

	aleph, err := svc.Create(ctx, book.Draft{
		Title: "El Aleph", Author: "Borges", ISBN: "9788420633114", Status: book.StatusInRepair,
	})
	require.NoError(t, err)

	t.Run("duplicate isbn", func(t *testing.T) {
		_, err := svc.Create(ctx, book.Draft{Title: "x", Author: "y", ISBN: "9780441013593"})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("update with identical values is not a miss", func(t *testing.T) {
		_, err := svc.Update(ctx, aleph.ID, book.Draft{
			Title: "El Aleph", Author: "Borges", ISBN: "9788420633114", Status: book.StatusInRepair,
		})
		require.NoError(t, err)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, 999999, book.Draft{Title: "x", Author: "y", ISBN: "0000000000"})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("update isbn collision", func(t *testing.T) {
		_, err := svc.Update(ctx, aleph.ID, book.Draft{Title: "El Aleph", Author: "Borges", ISBN: "9780441013593"})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("update keeps registration time", func(t *testing.T) {
		updated, err := svc.Update(ctx, dune.ID, book.Draft{
			Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: intPtr(1965), ISBN: "9780441013593",
			Status: book.StatusBorrowed,
		})
		require.NoError(t, err)
		assert.Equal(t, book.StatusBorrowed, updated.Status)
		assert.True(t, dune.RegisteredAt.Equal(updated.RegisteredAt))
	})

	t.Run("status filter is exact and follows collation", func(t *testing.T) {
		got, err := repo.FilterByStatus(ctx, "Prestado")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, dune.ID, got[0].ID)

		// utf8mb4_unicode_ci: 大小写不敏感
		got, err = repo.FilterByStatus(ctx, "prestado")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.FilterByStatus(ctx, "Prest")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list sorting and fallback", func(t *testing.T) {
		byYear, err := repo.List(ctx, book.NewListParams("anio", "DESC", "", ""))
		require.NoError(t, err)
		require.Len(t, byYear, 2)
		assert.Equal(t, dune.ID, byYear[0].ID)

		byID, err := repo.List(ctx, book.NewListParams("id", "ASC", "", ""))
		require.NoError(t, err)
		fallback, err := repo.List(ctx, book.NewListParams("nonexistent_column", "sideways", "", ""))
		require.NoError(t, err)
		assert.Equal(t, byID, fallback)
	})

	t.Run("search and facets", func(t *testing.T) {
		got, err := repo.SearchByTitle(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = repo.SearchByTitle(ctx, "ALEPH")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, aleph.ID, got[0].ID)

		genres, err := repo.Genres(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"SciFi"}, genres)

		authors, err := repo.Authors(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Borges", "Herbert"}, authors)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, dune.ID))
		require.NoError(t, svc.Delete(ctx, dune.ID))

		_, err := svc.GetByID(ctx, dune.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

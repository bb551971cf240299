package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appbook "github.com/xiebiao/biblioteca/internal/application/book"
	"github.com/xiebiao/biblioteca/internal/domain/book"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/messaging"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/biblioteca/internal/interface/http/handler"
	"github.com/xiebiao/biblioteca/internal/interface/http/router"
	"github.com/xiebiao/biblioteca/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:3000"},
	}
}

func newEngine(t *testing.T, cfg *config.Config, repo book.Repository) *gin.Engine {
	t.Helper()
	return newEngineWithLogger(t, cfg, repo, zap.NewNop())
}

func newEngineWithLogger(t *testing.T, cfg *config.Config, repo book.Repository, log *zap.Logger) *gin.Engine {
	t.Helper()
	svc := book.NewService(repo)
	events := messaging.NoopPublisher{}

	h := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(svc, events, log),
		appbook.NewUpdateBookUseCase(svc, events, log),
		appbook.NewDeleteBookUseCase(svc, events, log),
		appbook.NewGetBookUseCase(svc),
		appbook.NewListBooksUseCase(svc),
		appbook.NewSearchBooksUseCase(svc),
		appbook.NewFacetsUseCase(svc),
	)
	r, err := router.New(cfg, log, h)
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func dune() map[string]interface{} {
	return map[string]interface{}{
		"titulo": "Dune",
		"autor":  "Frank Herbert",
		"genero": "Ciencia ficción",
		"anio":   1965,
		"isbn":   "9780441013593",
	}
}

func TestBookAPI_DuneLifecycle(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	w := do(t, r, http.MethodPost, "/api/libros", dune())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[appbook.BookDTO](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Disponible", created.Status)
	assert.False(t, created.RegisteredAt.IsZero())
	assert.NotContains(t, w.Body.String(), "imagen_url")

	w = do(t, r, http.MethodGet, "/api/libros", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]appbook.BookDTO](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	update := dune()
	update["estado"] = "Prestado"
	w = do(t, r, http.MethodPut, "/api/libros/"+itoa(created.ID), update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[appbook.BookDTO](t, w)
	assert.Equal(t, "Prestado", updated.Status)
	assert.True(t, created.RegisteredAt.Equal(updated.RegisteredAt))

	w = do(t, r, http.MethodGet, "/api/libros/filtrar/estado/Prestado", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]appbook.BookDTO](t, w), 1)

	w = do(t, r, http.MethodDelete, "/api/libros/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/libros/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Libro no encontrado", decode[response.ErrorBody](t, w).Error)

	// 幂等删除
	w = do(t, r, http.MethodDelete, "/api/libros/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/libros", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestBookAPI_Validation(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	tests := []struct {
		name  string
		patch map[string]interface{}
		field string
	}{
		{"titulo ausente", map[string]interface{}{"titulo": nil}, "titulo"},
		{"autor en blanco", map[string]interface{}{"autor": "   "}, "autor"},
		{"isbn corto", map[string]interface{}{"isbn": "123"}, "isbn"},
		{"isbn largo", map[string]interface{}{"isbn": "123456789012345678901"}, "isbn"},
		{"anio como texto", map[string]interface{}{"anio": "1965"}, "anio"},
		{"anio decimal", map[string]interface{}{"anio": 1965.5}, "anio"},
		{"anio antiguo", map[string]interface{}{"anio": 999}, "anio"},
		{"anio futuro", map[string]interface{}{"anio": 9999}, "anio"},
		{"estado desconocido", map[string]interface{}{"estado": "Perdido"}, "estado"},
		{"estado en minúsculas", map[string]interface{}{"estado": "prestado"}, "estado"},
		{"imagen_url inválida", map[string]interface{}{"imagen_url": "no es una url"}, "imagen_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := dune()
			for k, v := range tt.patch {
				if v == nil {
					delete(body, k)
					continue
				}
				body[k] = v
			}

			w := do(t, r, http.MethodPost, "/api/libros", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			res := decode[response.ErrorBody](t, w)
			assert.Equal(t, "Datos inválidos", res.Error)
			require.NotEmpty(t, res.Details)
			assert.Equal(t, tt.field, res.Details[0].Field)
			assert.NotEmpty(t, res.Details[0].Message)
		})
	}

	bodyErrors := []struct {
		name    string
		body    string
		message string
	}{
		{"JSON mal formado", `{"titulo":`, "JSON incompleto"},
		{"cuerpo vacío", "", "El cuerpo de la solicitud está vacío"},
		{"arreglo en lugar de objeto", `[]`, "El cuerpo debe ser un objeto JSON"},
		{"texto en lugar de objeto", `"Dune"`, "El cuerpo debe ser un objeto JSON"},
	}
	for _, tt := range bodyErrors {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/libros", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			res := decode[response.ErrorBody](t, w)
			require.Len(t, res.Details, 1)
			assert.Equal(t, "body", res.Details[0].Field)
			assert.Equal(t, tt.message, res.Details[0].Message)
		})
	}

	t.Run("PUT con cuerpo vacío", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/api/libros/1", "")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		res := decode[response.ErrorBody](t, w)
		require.Len(t, res.Details, 1)
		assert.Equal(t, "El cuerpo de la solicitud está vacío", res.Details[0].Message)
	})

	// 校验失败不会写入
	w := do(t, r, http.MethodGet, "/api/libros", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestBookAPI_OptionalFields(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	body := dune()
	delete(body, "anio")
	delete(body, "genero")
	body["imagen_url"] = ""
	w := do(t, r, http.MethodPost, "/api/libros", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Nil(t, raw["anio"])
	assert.Equal(t, "", raw["genero"])
	assert.NotContains(t, raw, "imagen_url")

	body = dune()
	body["isbn"] = "0441013597"
	body["anio"] = nil
	body["imagen_url"] = "http://localhost:3000/portadas/dune.jpg"
	w = do(t, r, http.MethodPost, "/api/libros", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[appbook.BookDTO](t, w)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, "http://localhost:3000/portadas/dune.jpg", *created.ImageURL)
}

func TestBookAPI_Conflicts(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/libros", dune()).Code)

	w := do(t, r, http.MethodPost, "/api/libros", dune())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ISBN duplicado", decode[response.ErrorBody](t, w).Error)

	other := dune()
	other["isbn"] = "9780307474728"
	w = do(t, r, http.MethodPost, "/api/libros", other)
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[appbook.BookDTO](t, w)

	// 更新成已存在的ISBN
	w = do(t, r, http.MethodPut, "/api/libros/"+itoa(second.ID), dune())
	assert.Equal(t, http.StatusConflict, w.Code)

	// 保持自己的ISBN不算冲突
	w = do(t, r, http.MethodPut, "/api/libros/"+itoa(second.ID), other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookAPI_IDs(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	w := do(t, r, http.MethodPut, "/api/libros/999", dune())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Libro no encontrado", decode[response.ErrorBody](t, w).Error)

	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/libros/"+id, nil).Code, id)
		assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodDelete, "/api/libros/"+id, nil).Code, id)
	}

	// 路径ID先于请求体校验
	w = do(t, r, http.MethodPut, "/api/libros/abc", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", decode[response.ErrorBody](t, w).Details[0].Field)
}

func seed(t *testing.T, r http.Handler) {
	t.Helper()
	books := []map[string]interface{}{
		dune(),
		{"titulo": "Cien años de soledad", "autor": "Gabriel García Márquez", "genero": "Realismo mágico", "anio": 1967, "isbn": "9780307474728", "estado": "Prestado"},
		{"titulo": "El Aleph", "autor": "Jorge Luis Borges", "genero": "", "isbn": "9789875666481", "estado": "En reparación"},
		{"titulo": "Ficciones", "autor": "Jorge Luis Borges", "genero": "Cuento", "anio": 1944, "isbn": "9788420633121"},
	}
	for _, b := range books {
		w := do(t, r, http.MethodPost, "/api/libros", b)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func titles(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := []string{}
	for _, b := range decode[[]appbook.BookDTO](t, w) {
		out = append(out, b.Title)
	}
	return out
}

func TestBookAPI_CatalogQueries(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())
	seed(t, r)

	byID := titles(t, do(t, r, http.MethodGet, "/api/libros", nil))
	assert.Equal(t, []string{"Dune", "Cien años de soledad", "El Aleph", "Ficciones"}, byID)

	// 非法排序列/方向静默回退为 id ASC
	assert.Equal(t, byID, titles(t, do(t, r, http.MethodGet, "/api/libros?sortBy=precio&sortOrder=sideways", nil)))

	assert.Equal(t,
		[]string{"Ficciones", "El Aleph", "Dune", "Cien años de soledad"},
		titles(t, do(t, r, http.MethodGet, "/api/libros?sortBy=titulo&sortOrder=desc", nil)))

	// anio为NULL的排在升序最前
	assert.Equal(t,
		[]string{"El Aleph", "Ficciones", "Dune", "Cien años de soledad"},
		titles(t, do(t, r, http.MethodGet, "/api/libros?sortBy=anio", nil)))

	q := url.Values{"filterBy": {"autor"}, "filterValue": {"borges"}, "sortBy": {"titulo"}}
	assert.Equal(t, []string{"El Aleph", "Ficciones"},
		titles(t, do(t, r, http.MethodGet, "/api/libros?"+q.Encode(), nil)))

	// 过滤列非法或过滤值为空时不过滤
	assert.Len(t, titles(t, do(t, r, http.MethodGet, "/api/libros?filterBy=precio&filterValue=1", nil)), 4)
	assert.Len(t, titles(t, do(t, r, http.MethodGet, "/api/libros?filterBy=autor&filterValue=", nil)), 4)

	// LIKE通配符按字面匹配
	assert.Empty(t, titles(t, do(t, r, http.MethodGet, "/api/libros?filterBy=titulo&filterValue=%25", nil)))

	assert.Equal(t, []string{"Cien años de soledad", "Dune", "El Aleph", "Ficciones"},
		titles(t, do(t, r, http.MethodGet, "/api/libros/buscar", nil)))
	assert.Equal(t, []string{"Cien años de soledad", "Ficciones"},
		titles(t, do(t, r, http.MethodGet, "/api/libros/buscar?titulo=CI", nil)))

	assert.Equal(t, []string{"Cien años de soledad"},
		titles(t, do(t, r, http.MethodGet, "/api/libros/filtrar/genero/"+url.PathEscape("mágico"), nil)))
	assert.Equal(t, []string{"El Aleph", "Ficciones"},
		titles(t, do(t, r, http.MethodGet, "/api/libros/filtrar/autor/Borges", nil)))
	assert.Equal(t, []string{"El Aleph"},
		titles(t, do(t, r, http.MethodGet, "/api/libros/filtrar/estado/"+url.PathEscape("en reparación"), nil)))
	assert.Empty(t, titles(t, do(t, r, http.MethodGet, "/api/libros/filtrar/estado/Prest", nil)))

	w := do(t, r, http.MethodGet, "/api/libros/generos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Ciencia ficción", "Cuento", "Realismo mágico"}, decode[[]string](t, w))

	w = do(t, r, http.MethodGet, "/api/libros/autores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Frank Herbert", "Gabriel García Márquez", "Jorge Luis Borges"}, decode[[]string](t, w))
}

// brokenRepo 所有读操作都失败
type brokenRepo struct {
	book.Repository
}

func (brokenRepo) List(context.Context, book.ListParams) ([]*book.Book, error) {
	return nil, errors.New("dial tcp 10.0.0.5:3306: connection refused")
}

func (brokenRepo) Genres(context.Context) ([]string, error) {
	return nil, errors.New("Error 1146: Table 'biblioteca.libros' doesn't exist")
}

func TestBookAPI_InternalErrorsAreGeneric(t *testing.T) {
	r := newEngine(t, testConfig(), brokenRepo{Repository: memory.NewBookRepository()})

	for _, path := range []string{"/api/libros", "/api/libros/generos"} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		res := decode[response.ErrorBody](t, w)
		assert.Equal(t, "Error servidor", res.Error)
		assert.NotContains(t, w.Body.String(), "3306")
		assert.NotContains(t, w.Body.String(), "1146")
	}
}

func TestRouter_Ambient(t *testing.T) {
	r := newEngine(t, testConfig(), memory.NewBookRepository())

	w := do(t, r, http.MethodGet, "/api/nada", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode[response.ErrorBody](t, w).Error)

	w = do(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodOptions, "/api/libros", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)

	req = httptest.NewRequest(http.MethodGet, "/api/libros", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PanicKeepsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngineWithLogger(t, testConfig(), memory.NewBookRepository(), zap.New(core))
	r.GET("/api/explota", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/api/explota", nil)
	req.Header.Set("X-Request-ID", "req-panic-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error servidor", decode[response.ErrorBody](t, w).Error)
	assert.Equal(t, "req-panic-1", w.Header().Get("X-Request-ID"))

	panics := logs.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-panic-1", panics[0].ContextMap()["request_id"])

	access := logs.FilterMessage("http request").All()
	require.Len(t, access, 1)
	fields := access[0].ContextMap()
	assert.Equal(t, "req-panic-1", fields["request_id"])
	assert.Equal(t, int64(http.StatusInternalServerError), fields["status"])
	assert.Equal(t, "/api/explota", fields["path"])
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	r := newEngine(t, cfg, memory.NewBookRepository())

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/libros", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/libros", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodGet, "/api/libros", nil).Code)

	// 健康检查不限流
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ping", nil).Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

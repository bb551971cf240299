// Package client Biblioteca Digital REST API的Go客户端
//
//	c := client.New("http://localhost:8080")
//	books, err := c.List(ctx, client.ListParams{SortBy: "titulo", SortOrder: "DESC"})
//	if client.IsNotFound(err) { ... }
//
// 不做重试：失败直接返回给调用方
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/book"
)

// DefaultTimeout 单次请求超时
const DefaultTimeout = 7 * time.Second

const basePath = "/api/libros"

// Book 服务端返回的图书记录
type Book struct {
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

// CoverURL 展示用封面地址：imagen_url优先，否则按ISBN取Open Library封面，都没有返回空串
func (b Book) CoverURL() string {
	return book.CoverURL(&book.Book{ISBN: b.ISBN, ImageURL: b.ImageURL})
}

// Draft 创建/更新请求体，更新是全量替换
type Draft struct {
	Title    string `json:"titulo"`
	Author   string `json:"autor"`
	Genre    string `json:"genero,omitempty"`
	Year     *int   `json:"anio,omitempty"`
	ISBN     string `json:"isbn"`
	Status   string `json:"estado,omitempty"`
	ImageURL string `json:"imagen_url,omitempty"`
}

// DraftFrom 从已有记录生成编辑表单
func DraftFrom(b Book) Draft {
	d := Draft{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.Year,
		ISBN:   b.ISBN,
		Status: b.Status,
	}
	if b.ImageURL != nil {
		d.ImageURL = *b.ImageURL
	}
	return d
}

// ListParams 列表查询参数，空值不会出现在查询串里
type ListParams struct {
	SortBy      string
	SortOrder   string
	FilterBy    string
	FilterValue string
}

// Values 查询串
func (p ListParams) Values() url.Values {
	v := url.Values{}
	for k, val := range map[string]string{
		"sortBy":      p.SortBy,
		"sortOrder":   p.SortOrder,
		"filterBy":    p.FilterBy,
		"filterValue": p.FilterValue,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// FieldError 字段校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError 非2xx响应
type APIError struct {
	Status  int
	Code    int
	Message string
	Details []FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("biblioteca: HTTP %d", e.Status)
	}
	return fmt.Sprintf("biblioteca: HTTP %d: %s", e.Status, e.Message)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound 404
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsConflict 409（ISBN重复）
func IsConflict(err error) bool { return statusOf(err) == http.StatusConflict }

// IsValidation 400
func IsValidation(err error) bool { return statusOf(err) == http.StatusBadRequest }

// Client API客户端，可并发使用
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义http.Client（其Timeout优先）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout 修改请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New 创建客户端，baseURL如 http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List GET /api/libros
func (c *Client) List(ctx context.Context, p ListParams) ([]Book, error) {
	var books []Book
	err := c.do(ctx, http.MethodGet, basePath, p.Values(), nil, &books)
	return books, err
}

// Get GET /api/libros/:id
func (c *Client) Get(ctx context.Context, id uint) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodGet, idPath(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create POST /api/libros
func (c *Client) Create(ctx context.Context, d Draft) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodPost, basePath, nil, d, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update PUT /api/libros/:id
func (c *Client) Update(ctx context.Context, id uint, d Draft) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodPut, idPath(id), nil, d, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete DELETE /api/libros/:id，不存在也成功
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath(id), nil, nil, nil)
}

// SearchByTitle GET /api/libros/buscar?titulo=
func (c *Client) SearchByTitle(ctx context.Context, term string) ([]Book, error) {
	var books []Book
	err := c.do(ctx, http.MethodGet, basePath+"/buscar", url.Values{"titulo": {term}}, nil, &books)
	return books, err
}

// FilterByGenre GET /api/libros/filtrar/genero/:genero
func (c *Client) FilterByGenre(ctx context.Context, genre string) ([]Book, error) {
	return c.filter(ctx, "genero", genre)
}

// FilterByAuthor GET /api/libros/filtrar/autor/:autor
func (c *Client) FilterByAuthor(ctx context.Context, author string) ([]Book, error) {
	return c.filter(ctx, "autor", author)
}

// FilterByStatus GET /api/libros/filtrar/estado/:estado
func (c *Client) FilterByStatus(ctx context.Context, status string) ([]Book, error) {
	return c.filter(ctx, "estado", status)
}

// Genres GET /api/libros/generos
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var values []string
	err := c.do(ctx, http.MethodGet, basePath+"/generos", nil, nil, &values)
	return values, err
}

// Authors GET /api/libros/autores
func (c *Client) Authors(ctx context.Context) ([]string, error) {
	var values []string
	err := c.do(ctx, http.MethodGet, basePath+"/autores", nil, nil, &values)
	return values, err
}

func (c *Client) filter(ctx context.Context, field, value string) ([]Book, error) {
	var books []Book
	err := c.do(ctx, http.MethodGet, basePath+"/filtrar/"+field+"/"+url.PathEscape(value), nil, nil, &books)
	return books, err
}

func idPath(id uint) string {
	return basePath + "/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("biblioteca: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("biblioteca: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("biblioteca: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("biblioteca: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Code    int          `json:"code"`
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

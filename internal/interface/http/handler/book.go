package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/biblioteca/internal/application/book"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBook  *appbook.CreateBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	getBook     *appbook.GetBookUseCase
	listBooks   *appbook.ListBooksUseCase
	searchBooks *appbook.SearchBooksUseCase
	facets      *appbook.FacetsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	getBook *appbook.GetBookUseCase,
	listBooks *appbook.ListBooksUseCase,
	searchBooks *appbook.SearchBooksUseCase,
	facets *appbook.FacetsUseCase,
) *BookHandler {
	return &BookHandler{
		createBook:  createBook,
		updateBook:  updateBook,
		deleteBook:  deleteBook,
		getBook:     getBook,
		listBooks:   listBooks,
		searchBooks: searchBooks,
		facets:      facets,
	}
}

// List 图书列表
// @Summary      图书列表
// @Description  排序+可选子串过滤；非法的排序列、排序方向、过滤列静默回退
// @Tags         libros
// @Produce      json
// @Param        sortBy      query string false "排序列" Enums(id,titulo,autor,genero,anio,estado,fecha_registro)
// @Param        sortOrder   query string false "排序方向" Enums(ASC,DESC)
// @Param        filterBy    query string false "过滤列" Enums(titulo,autor,genero,estado,isbn)
// @Param        filterValue query string false "过滤值（子串）"
// @Success      200 {array}  appbook.BookDTO
// @Failure      500 {object} response.ErrorBody
// @Router       /api/libros [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	// 全是字符串字段，绑定不会失败
	_ = c.ShouldBindQuery(&q)

	books, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
		FilterBy:    q.FilterBy,
		FilterValue: q.FilterValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, books)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         libros
// @Produce      json
// @Param        id  path     int true "图书ID"
// @Success      200 {object} appbook.BookDTO
// @Failure      400 {object} response.ErrorBody "ID非法"
// @Failure      404 {object} response.ErrorBody "Libro no encontrado"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/libros/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create 登记图书
// @Summary      登记图书
// @Description  estado为空时默认Disponible
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        request body     dto.BookRequest true "图书信息"
// @Success      201     {object} appbook.BookDTO
// @Failure      400     {object} response.ErrorBody "Datos inválidos"
// @Failure      409     {object} response.ErrorBody "ISBN duplicado"
// @Failure      500     {object} response.ErrorBody
// @Router       /api/libros [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 全量更新图书
// @Summary      更新图书
// @Description  全量替换，未提交的estado回到Disponible
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        id      path     int             true "图书ID"
// @Param        request body     dto.BookRequest true "图书信息"
// @Success      200     {object} appbook.BookDTO
// @Failure      400     {object} response.ErrorBody "Datos inválidos"
// @Failure      404     {object} response.ErrorBody "Libro no encontrado"
// @Failure      409     {object} response.ErrorBody "ISBN duplicado"
// @Failure      500     {object} response.ErrorBody
// @Router       /api/libros/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除图书
// @Summary      删除图书
// @Description  幂等，记录不存在也返回204
// @Tags         libros
// @Param        id  path int true "图书ID"
// @Success      204
// @Failure      400 {object} response.ErrorBody "ID非法"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/libros/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Search 按书名搜索
// @Summary      按书名搜索
// @Description  子串匹配，按书名升序；titulo为空返回全部
// @Tags         libros
// @Produce      json
// @Param        titulo query    string false "书名关键字"
// @Success      200    {array}  appbook.BookDTO
// @Failure      500    {object} response.ErrorBody
// @Router       /api/libros/buscar [get]
func (h *BookHandler) Search(c *gin.Context) {
	h.search(c, appbook.SearchByTitle, c.Query("titulo"))
}

// FilterByGenre 按类型过滤
// @Summary      按类型过滤
// @Tags         libros
// @Produce      json
// @Param        genero path     string true "类型（子串）"
// @Success      200    {array}  appbook.BookDTO
// @Failure      500    {object} response.ErrorBody
// @Router       /api/libros/filtrar/genero/{genero} [get]
func (h *BookHandler) FilterByGenre(c *gin.Context) {
	h.search(c, appbook.SearchByGenre, c.Param("genero"))
}

// FilterByAuthor 按作者过滤
// @Summary      按作者过滤
// @Tags         libros
// @Produce      json
// @Param        autor path     string true "作者（子串）"
// @Success      200   {array}  appbook.BookDTO
// @Failure      500   {object} response.ErrorBody
// @Router       /api/libros/filtrar/autor/{autor} [get]
func (h *BookHandler) FilterByAuthor(c *gin.Context) {
	h.search(c, appbook.SearchByAuthor, c.Param("autor"))
}

// FilterByStatus 按状态过滤
// @Summary      按状态过滤
// @Description  精确匹配，不区分大小写
// @Tags         libros
// @Produce      json
// @Param        estado path     string true "状态" Enums(Disponible,Prestado,En reparación)
// @Success      200    {array}  appbook.BookDTO
// @Failure      500    {object} response.ErrorBody
// @Router       /api/libros/filtrar/estado/{estado} [get]
func (h *BookHandler) FilterByStatus(c *gin.Context) {
	h.search(c, appbook.SearchByStatus, c.Param("estado"))
}

// Genres 全部类型
// @Summary      全部类型
// @Tags         libros
// @Produce      json
// @Success      200 {array}  string
// @Failure      500 {object} response.ErrorBody
// @Router       /api/libros/generos [get]
func (h *BookHandler) Genres(c *gin.Context) {
	values, err := h.facets.Genres(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, values)
}

// Authors 全部作者
// @Summary      全部作者
// @Tags         libros
// @Produce      json
// @Success      200 {array}  string
// @Failure      500 {object} response.ErrorBody
// @Router       /api/libros/autores [get]
func (h *BookHandler) Authors(c *gin.Context) {
	values, err := h.facets.Authors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, values)
}

func (h *BookHandler) search(c *gin.Context, field appbook.SearchField, term string) {
	books, err := h.searchBooks.Execute(c.Request.Context(), appbook.SearchBooksRequest{Field: field, Term: term})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, books)
}

// bindID 解析路径中的正整数ID，失败时已写入400
func bindID(c *gin.Context) (uint, bool) {
	var uri dto.BookIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperrors.ErrInvalidID.WithDetails(apperrors.FieldError{
			Field:   "id",
			Message: "El id debe ser un entero positivo",
		}))
		return 0, false
	}
	return uri.ID, true
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 写操作走GORM，每个操作一条语句，不使用事务
// 2. 目录查询由squirrel生成SQL(catalog_query.go)，GORM只负责执行和扫描
// 3. 数据库错误转换为业务错误(ISBN重复、记录不存在)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toModel(b)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID和登记时间
	b.ID = model.ID
	b.RegisteredAt = model.RegisteredAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model LibroModel
	err := r.db.WithContext(ctx).Select(selectColumns).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toEntity(&model), nil
}

// Update 全量更新
// 依赖DSN中的clientFoundRows=true：RowsAffected为匹配行数，0即记录不存在
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := r.db.WithContext(ctx).
		Model(&LibroModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"titulo":     b.Title,
			"autor":      b.Author,
			"genero":     b.Genre,
			"anio":       b.Year,
			"isbn":       b.ISBN,
			"estado":     string(b.Status),
			"imagen_url": b.ImageURL,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 物理删除，影响行数为0也视为成功（幂等）
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&LibroModel{}, id).Error; err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	query, args, err := listQuery(params)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询失败")
	}
	return r.find(ctx, "查询图书列表失败", query, args)
}

func (r *bookRepository) SearchByTitle(ctx context.Context, term string) ([]*book.Book, error) {
	return r.contains(ctx, book.FilterByTitle, term)
}

func (r *bookRepository) FilterByGenre(ctx context.Context, term string) ([]*book.Book, error) {
	return r.contains(ctx, book.FilterByGenre, term)
}

func (r *bookRepository) FilterByAuthor(ctx context.Context, term string) ([]*book.Book, error) {
	return r.contains(ctx, book.FilterByAuthor, term)
}

func (r *bookRepository) FilterByStatus(ctx context.Context, status string) ([]*book.Book, error) {
	query, args, err := statusQuery(status)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询失败")
	}
	return r.find(ctx, "按状态查询图书失败", query, args)
}

func (r *bookRepository) Genres(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, book.SortByGenre)
}

func (r *bookRepository) Authors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, book.SortByAuthor)
}

func (r *bookRepository) contains(ctx context.Context, col book.FilterColumn, term string) ([]*book.Book, error) {
	query, args, err := containsQuery(col, term)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询失败")
	}
	return r.find(ctx, "查询图书失败", query, args)
}

func (r *bookRepository) find(ctx context.Context, msg, query string, args []interface{}) ([]*book.Book, error) {
	models := make([]LibroModel, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, msg)
	}
	return toEntities(models), nil
}

func (r *bookRepository) distinct(ctx context.Context, col book.SortColumn) ([]string, error) {
	query, args, err := distinctQuery(col)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询失败")
	}

	values := make([]string, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&values).Error; err != nil {
		return nil, apperrors.Wrapf(err, "查询%s失败", col)
	}
	return values, nil
}

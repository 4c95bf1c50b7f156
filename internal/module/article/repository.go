package article

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
	"github.com/simp-lee/alchemist/paging"
	"github.com/simp-lee/alchemist/paging/gormsource"
)

// Allowed fields for sorting and filtering in list queries.
var (
	allowedSortFields   = []string{"id", "title", "author", "created_at", "updated_at"}
	allowedFilterFields = []string{"title", "author"}
)

// batchSize bounds the rows per INSERT statement in CreateBatch.
const batchSize = 100

// articleRepository implements domain.ArticleRepository using GORM.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository backed by the given GORM database.
func NewArticleRepository(db *gorm.DB) domain.ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts a new article into the database.
func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// CreateBatch inserts all articles in a single transaction.
func (r *articleRepository) CreateBatch(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return tx.CreateInBatches(articles, batchSize).Error
	})
	return mapError(err)
}

// GetByID retrieves an article by its primary key.
func (r *articleRepository) GetByID(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &article, nil
}

// Source returns the filtered, ordered article set for q.
func (r *articleRepository) Source(q domain.ListQuery) paging.Source[domain.Article] {
	query := r.db.Model(&domain.Article{}).Scopes(
		pkg.Filter(q, allowedFilterFields),
		pkg.Sort(q, allowedSortFields),
	)
	return gormsource.New[domain.Article](query)
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by message, since
// the pure-Go SQLite driver does not translate them to gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

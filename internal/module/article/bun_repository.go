package article

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
	"github.com/simp-lee/alchemist/paging"
	"github.com/simp-lee/alchemist/paging/bunsource"
)

// bunArticleRepository implements domain.ArticleRepository using bun. It
// shares the table, sort and filter rules of the GORM repository.
type bunArticleRepository struct {
	db *bun.DB
}

// NewBunArticleRepository creates a new ArticleRepository backed by bun.
func NewBunArticleRepository(db *bun.DB) domain.ArticleRepository {
	return &bunArticleRepository{db: db}
}

// Create inserts a new article, stamping both timestamps.
func (r *bunArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	stamp(article, time.Now())
	if _, err := r.db.NewInsert().Model(article).Exec(ctx); err != nil {
		return mapBunError(err)
	}
	return nil
}

// CreateBatch inserts all articles in a single transaction.
func (r *bunArticleRepository) CreateBatch(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	now := time.Now()
	for i := range articles {
		stamp(&articles[i], now)
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for start := 0; start < len(articles); start += batchSize {
			end := min(start+batchSize, len(articles))
			chunk := articles[start:end]
			if _, err := tx.NewInsert().Model(&chunk).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return mapBunError(err)
}

// GetByID retrieves an article by its primary key.
func (r *bunArticleRepository) GetByID(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	err := r.db.NewSelect().Model(&article).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, mapBunError(err)
	}
	return &article, nil
}

// Source returns the filtered, ordered article set for q.
func (r *bunArticleRepository) Source(q domain.ListQuery) paging.Source[domain.Article] {
	query := r.db.NewSelect().Model((*domain.Article)(nil))
	for _, cond := range pkg.Conditions(q.Filter, allowedFilterFields) {
		query = query.Where(cond.Query(), cond.Arg())
	}
	query = query.OrderExpr(pkg.OrderBy(q.Sort, allowedSortFields))
	return bunsource.New[domain.Article](query)
}

func stamp(article *domain.Article, now time.Time) {
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now
}

// mapBunError converts bun and database/sql errors to domain errors.
func mapBunError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

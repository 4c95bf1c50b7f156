package domain

import (
	"context"

	"github.com/simp-lee/alchemist/paging"
)

// Article is the demo entity listed by the paginated endpoints.
type Article struct {
	BaseModel
	Title  string `gorm:"size:200;not null;index" bun:"title,notnull" json:"title"`
	Author string `gorm:"size:100;not null;index" bun:"author,notnull" json:"author"`
	Body   string `gorm:"type:text" bun:"body" json:"body"`
}

// ArticleRepository defines the data access interface for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) error
	CreateBatch(ctx context.Context, articles []Article) error
	GetByID(ctx context.Context, id uint) (*Article, error)
	// Source returns the ordered, filtered article set described by q,
	// ready to be paginated. q.Page is ignored.
	Source(q ListQuery) paging.Source[Article]
}

// ArticleService defines the business logic interface for articles.
type ArticleService interface {
	CreateArticle(ctx context.Context, title, author, body string) (*Article, error)
	GetArticle(ctx context.Context, id uint) (*Article, error)
	ListArticles(ctx context.Context, q ListQuery) (*paging.Page[Article], error)
	Seed(ctx context.Context, n int) error
}

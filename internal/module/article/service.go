package article

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/paging"
)

// seedAuthors rotate across seeded articles so author filters have data.
var seedAuthors = []string{"ada", "grace", "linus", "barbara", "ken"}

// articleService implements domain.ArticleService.
type articleService struct {
	repo domain.ArticleRepository
	cfg  paging.Config
}

// NewArticleService creates a new ArticleService. cfg is validated once here
// and shared read-only by every list request.
func NewArticleService(repo domain.ArticleRepository, cfg paging.Config) (domain.ArticleService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &articleService{repo: repo, cfg: cfg}, nil
}

// CreateArticle validates input, builds an Article, and persists it via the repository.
func (s *articleService) CreateArticle(ctx context.Context, title, author, body string) (*domain.Article, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if err := validateArticle(title, author); err != nil {
		return nil, err
	}

	article := &domain.Article{
		Title:  title,
		Author: author,
		Body:   body,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetArticle retrieves an article by ID.
func (s *articleService) GetArticle(ctx context.Context, id uint) (*domain.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// ListArticles returns page q.Page of the articles selected by q. Paging
// errors are returned as produced by paging.Paginate; callers translate them
// with pkg.PagingError.
func (s *articleService) ListArticles(ctx context.Context, q domain.ListQuery) (*paging.Page[domain.Article], error) {
	return paging.Paginate(ctx, s.repo.Source(q), q.Page, s.cfg)
}

// Seed inserts n generated articles in one transaction.
func (s *articleService) Seed(ctx context.Context, n int) error {
	if n <= 0 {
		return domain.NewAppError(domain.CodeValidation, "count must be positive", nil)
	}
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{
			Title:  fmt.Sprintf("Article %d", i+1),
			Author: seedAuthors[i%len(seedAuthors)],
			Body:   fmt.Sprintf("Body of sample article number %d.", i+1),
		}
	}
	return s.repo.CreateBatch(ctx, articles)
}

// validateArticle checks the trimmed title and author lengths.
func validateArticle(title, author string) error {
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return domain.NewAppError(domain.CodeValidation, "title is required", nil)
	case n < 3:
		return domain.NewAppError(domain.CodeValidation, "title must be at least 3 characters", nil)
	case n > 200:
		return domain.NewAppError(domain.CodeValidation, "title must be at most 200 characters", nil)
	}

	switch n := utf8.RuneCountInString(author); {
	case n == 0:
		return domain.NewAppError(domain.CodeValidation, "author is required", nil)
	case n < 2:
		return domain.NewAppError(domain.CodeValidation, "author must be at least 2 characters", nil)
	case n > 100:
		return domain.NewAppError(domain.CodeValidation, "author must be at most 100 characters", nil)
	}
	return nil
}

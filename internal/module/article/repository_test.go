package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/paging"
)

// setupTestDB creates an in-memory SQLite database with the Article table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&domain.Article{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// setupBunDB creates an in-memory SQLite database for the bun repository.
func setupBunDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.NewCreateTable().Model((*domain.Article)(nil)).Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// repositories returns both implementations over fresh databases.
func repositories(t *testing.T) map[string]domain.ArticleRepository {
	return map[string]domain.ArticleRepository{
		"gorm": NewArticleRepository(setupTestDB(t)),
		"bun":  NewBunArticleRepository(setupBunDB(t)),
	}
}

// seed inserts n articles titled "Article 01".. with authors alternating
// between ada (odd) and grace (even).
func seed(t *testing.T, repo domain.ArticleRepository, n int) {
	t.Helper()
	articles := make([]domain.Article, n)
	for i := range articles {
		author := "ada"
		if (i+1)%2 == 0 {
			author = "grace"
		}
		articles[i] = domain.Article{Title: fmt.Sprintf("Article %02d", i+1), Author: author}
	}
	if err := repo.CreateBatch(context.Background(), articles); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
}

func titles(items []domain.Article) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.Title
	}
	return out
}

func TestCreateAndGetByID(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			article := &domain.Article{Title: "Paging", Author: "ada", Body: "text"}
			if err := repo.Create(ctx, article); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if article.ID == 0 {
				t.Fatal("expected non-zero ID after Create")
			}

			got, err := repo.GetByID(ctx, article.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if got.Title != "Paging" || got.Author != "ada" || got.Body != "text" {
				t.Errorf("got %+v", got)
			}
			if got.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID(context.Background(), 999)
			if !domain.IsNotFound(err) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCreateBatch_Empty(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.CreateBatch(context.Background(), nil); err != nil {
				t.Errorf("CreateBatch(nil) = %v", err)
			}
		})
	}
}

func TestSource_Pages(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 25)
			ctx := context.Background()
			cfg := paging.Config{PerPage: 10}
			src := repo.Source(domain.ListQuery{Sort: "id:asc"})

			p, err := paging.Paginate(ctx, src, 3, cfg)
			if err != nil {
				t.Fatalf("Paginate: %v", err)
			}
			if p.Total != 25 || p.Pages != 3 || len(p.Items) != 5 {
				t.Fatalf("total=%d pages=%d items=%d", p.Total, p.Pages, len(p.Items))
			}
			if p.Items[0].Title != "Article 21" || p.Items[4].Title != "Article 25" {
				t.Errorf("titles = %v", titles(p.Items))
			}

			// The same source serves further pages without mutation.
			p, err = paging.Paginate(ctx, src, 1, cfg)
			if err != nil {
				t.Fatalf("Paginate: %v", err)
			}
			if len(p.Items) != 10 || p.Items[0].Title != "Article 01" {
				t.Errorf("page 1 titles = %v", titles(p.Items))
			}

			_, err = paging.Paginate(ctx, src, 4, cfg)
			if !errors.Is(err, paging.ErrOutOfRange) {
				t.Errorf("page 4: expected ErrOutOfRange, got %v", err)
			}
		})
	}
}

func TestSource_DefaultOrderIsNewestFirst(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 3)
			p, err := paging.Paginate(context.Background(), repo.Source(domain.ListQuery{Sort: "nope"}), 1, paging.Config{PerPage: 10})
			if err != nil {
				t.Fatalf("Paginate: %v", err)
			}
			want := []string{"Article 03", "Article 02", "Article 01"}
			if got := titles(p.Items); strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("titles = %v, want %v", got, want)
			}
		})
	}
}

func TestSource_FilterAndSort(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 12)
			q := domain.ListQuery{
				Sort:   "title:desc",
				Filter: map[string]string{"author": "grace", "title__like": "Article 1", "body": "ignored"},
			}
			p, err := paging.Paginate(context.Background(), repo.Source(q), 1, paging.Config{PerPage: 10})
			if err != nil {
				t.Fatalf("Paginate: %v", err)
			}
			want := []string{"Article 12", "Article 10"}
			if got := titles(p.Items); strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("titles = %v, want %v", got, want)
			}
			if p.Total != 2 {
				t.Errorf("Total = %d, want 2", p.Total)
			}
		})
	}
}

func TestSource_EmptyTable(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			p, err := paging.Paginate(context.Background(), repo.Source(domain.ListQuery{}), 1, paging.Config{PerPage: 10})
			if err != nil {
				t.Fatalf("Paginate: %v", err)
			}
			if p.Total != 0 || p.Pages != 0 || len(p.Items) != 0 {
				t.Errorf("unexpected page: %+v", p)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	if mapError(nil) != nil {
		t.Error("mapError(nil) should be nil")
	}
	if !domain.IsNotFound(mapError(gorm.ErrRecordNotFound)) {
		t.Error("ErrRecordNotFound should map to not found")
	}
	if !domain.IsAlreadyExists(mapError(errors.New("UNIQUE constraint failed: articles.title"))) {
		t.Error("unique violation should map to already exists")
	}
	if !domain.IsInternal(mapError(errors.New("disk I/O error"))) {
		t.Error("other errors should map to internal")
	}
	if !domain.IsNotFound(mapBunError(sql.ErrNoRows)) {
		t.Error("sql.ErrNoRows should map to not found")
	}
	if !domain.IsInternal(mapBunError(errors.New("disk I/O error"))) {
		t.Error("other bun errors should map to internal")
	}
}

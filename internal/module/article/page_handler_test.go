package article

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
	"github.com/simp-lee/alchemist/paging"
)

// --- mock service shared by handler tests ---

type mockArticleService struct {
	articles []domain.Article
	perPage  int
	// hooks for error injection
	createErr error
	getErr    error
	listErr   error
	// lastQuery records the query passed to ListArticles.
	lastQuery domain.ListQuery
}

func newMockService(n int) *mockArticleService {
	m := &mockArticleService{perPage: 10}
	for i := range n {
		m.articles = append(m.articles, domain.Article{
			BaseModel: domain.BaseModel{ID: uint(i + 1)},
			Title:     fmt.Sprintf("Article %d", i+1),
			Author:    "ada",
		})
	}
	return m
}

func (m *mockArticleService) CreateArticle(_ context.Context, title, author, body string) (*domain.Article, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	a := domain.Article{
		BaseModel: domain.BaseModel{ID: uint(len(m.articles) + 1)},
		Title:     title,
		Author:    author,
		Body:      body,
	}
	m.articles = append(m.articles, a)
	return &a, nil
}

func (m *mockArticleService) GetArticle(_ context.Context, id uint) (*domain.Article, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.articles {
		if m.articles[i].ID == id {
			return &m.articles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockArticleService) ListArticles(ctx context.Context, q domain.ListQuery) (*paging.Page[domain.Article], error) {
	m.lastQuery = q
	if m.listErr != nil {
		return nil, m.listErr
	}
	return paging.Paginate[domain.Article](ctx, paging.NewSliceSource(m.articles), q.Page, paging.Config{PerPage: m.perPage})
}

func (m *mockArticleService) Seed(ctx context.Context, n int) error {
	for i := range n {
		if _, err := m.CreateArticle(ctx, fmt.Sprintf("Seed %d", i+1), "ada", ""); err != nil {
			return err
		}
	}
	return nil
}

// --- helper to set up gin test router with minimal templates ---

// setupPageRouter creates a gin engine with stub templates that echo the
// data the handler passes, so tests can assert on it without the real views.
func setupPageRouter(h *ArticlePageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tmpl := template.Must(template.New("").Parse(
		`{{define "article/list.html"}}list theme={{.Theme}} page={{.Page.Page}}/{{.Page.Pages}} items={{len .Articles}} nav={{.Page.Nav}} sort={{.Query.Get "sort"}}{{end}}` +
			`{{define "article/detail.html"}}detail {{.Article.Title}}{{end}}` +
			`{{define "errors/400.html"}}400{{end}}` +
			`{{define "errors/404.html"}}404{{end}}` +
			`{{define "errors/500.html"}}500{{end}}`,
	))
	r.SetHTMLTemplate(tmpl)

	r.GET("/articles", h.ListPage)
	r.GET("/articles/:id", h.DetailPage)
	return r
}

func getPage(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// --- tests ---

func TestListPage(t *testing.T) {
	svc := newMockService(95)
	r := setupPageRouter(NewArticlePageHandler(svc, pkg.MalformedPageNotFound, "bootstrap4"))

	w := getPage(r, "/articles?page=1&sort=title:asc&author=ada")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"theme=bootstrap4", "page=1/10", "items=10", "nav=[1 2 3 4 … 9 10]", "sort=title:asc"} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q should contain %q", body, want)
		}
	}
	if svc.lastQuery.Filter["author"] != "ada" {
		t.Errorf("filter not forwarded: %+v", svc.lastQuery)
	}
}

func TestListPage_DefaultsToFirstPage(t *testing.T) {
	r := setupPageRouter(NewArticlePageHandler(newMockService(3), pkg.MalformedPageNotFound, "bootstrap5"))

	w := getPage(r, "/articles")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "page=1/1") {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
}

func TestListPage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		policy     pkg.MalformedPagePolicy
		listErr    error
		wantStatus int
		wantBody   string
	}{
		{"out of range", "/articles?page=99", pkg.MalformedPageNotFound, nil, http.StatusNotFound, "404"},
		{"page zero", "/articles?page=0", pkg.MalformedPageNotFound, nil, http.StatusNotFound, "404"},
		{"malformed as not found", "/articles?page=abc", pkg.MalformedPageNotFound, nil, http.StatusNotFound, "404"},
		{"malformed as bad request", "/articles?page=abc", pkg.MalformedPageBadRequest, nil, http.StatusBadRequest, "400"},
		{"source failure", "/articles", pkg.MalformedPageNotFound, &paging.SourceError{Op: "count", Err: errors.New("db down")}, http.StatusInternalServerError, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockService(25)
			svc.listErr = tt.listErr
			r := setupPageRouter(NewArticlePageHandler(svc, tt.policy, "bootstrap5"))

			w := getPage(r, tt.target)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestDetailPage(t *testing.T) {
	svc := newMockService(2)
	r := setupPageRouter(NewArticlePageHandler(svc, pkg.MalformedPageNotFound, "bootstrap5"))

	if w := getPage(r, "/articles/2"); w.Code != http.StatusOK || w.Body.String() != "detail Article 2" {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
	if w := getPage(r, "/articles/9"); w.Code != http.StatusNotFound {
		t.Errorf("missing article: expected 404, got %d", w.Code)
	}
	if w := getPage(r, "/articles/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("invalid id: expected 400, got %d", w.Code)
	}

	svc.getErr = domain.ErrInternal
	if w := getPage(r, "/articles/1"); w.Code != http.StatusInternalServerError {
		t.Errorf("service error: expected 500, got %d", w.Code)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		param   string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			got, err := parseID(c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.param, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.param, got, tt.want)
			}
		})
	}
}

package article

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
)

// listBaseURL is the path page links of the list view point at.
const listBaseURL = "/articles"

// ArticlePageHandler renders the HTML views of the article module.
type ArticlePageHandler struct {
	svc    domain.ArticleService
	policy pkg.MalformedPagePolicy
	theme  string
}

// NewArticlePageHandler creates a new ArticlePageHandler. theme names the
// pagination partial ("bootstrap5" or "bootstrap4").
func NewArticlePageHandler(svc domain.ArticleService, policy pkg.MalformedPagePolicy, theme string) *ArticlePageHandler {
	return &ArticlePageHandler{svc: svc, policy: policy, theme: theme}
}

// ListPage renders one page of articles with the ellipsized page navigation.
// GET /articles
func (h *ArticlePageHandler) ListPage(c *gin.Context) {
	q, err := pkg.ParseListQuery(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	page, err := h.svc.ListArticles(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "article/list.html", gin.H{
		"Articles": page.Items,
		"Page":     page.Meta(),
		"Theme":    h.theme,
		"BaseURL":  listBaseURL,
		"Query":    c.Request.URL.Query(),
	})
}

// DetailPage renders a single article.
// GET /articles/:id
func (h *ArticlePageHandler) DetailPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", gin.H{})
		return
	}

	article, err := h.svc.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "article/detail.html", gin.H{
		"Article": article,
		"BackURL": listBaseURL,
	})
}

// renderError renders the error page matching err's status.
func (h *ArticlePageHandler) renderError(c *gin.Context, err error) {
	pkg.LogPagingRejection(c, err)
	err = pkg.PagingError(err, h.policy)

	status := domain.HTTPStatusCode(err)
	switch status {
	case http.StatusNotFound:
		c.HTML(status, "errors/404.html", gin.H{})
	case http.StatusBadRequest:
		c.HTML(status, "errors/400.html", gin.H{})
	default:
		slog.ErrorContext(c.Request.Context(), "render article page failed", slog.String("error", err.Error()))
		c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
	}
}

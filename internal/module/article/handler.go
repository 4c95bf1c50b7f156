package article

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
)

// ArticleHandler handles REST API requests for the article resource.
type ArticleHandler struct {
	svc    domain.ArticleService
	policy pkg.MalformedPagePolicy
}

// NewArticleHandler creates a new ArticleHandler. policy decides how a
// malformed ?page= is reported.
func NewArticleHandler(svc domain.ArticleService, policy pkg.MalformedPagePolicy) *ArticleHandler {
	return &ArticleHandler{svc: svc, policy: policy}
}

// Create handles POST /api/v1/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	article, err := h.svc.CreateArticle(c.Request.Context(), req.Title, req.Author, req.Body)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, article)
}

// Get handles GET /api/v1/articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	article, err := h.svc.GetArticle(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, article)
}

// List handles GET /api/v1/articles.
func (h *ArticleHandler) List(c *gin.Context) {
	q, err := pkg.ParseListQuery(c)
	if err != nil {
		h.pagingError(c, err)
		return
	}

	page, err := h.svc.ListArticles(c.Request.Context(), q)
	if err != nil {
		h.pagingError(c, err)
		return
	}

	pkg.List(c, page)
}

func (h *ArticleHandler) pagingError(c *gin.Context, err error) {
	pkg.LogPagingRejection(c, err)
	pkg.Error(c, pkg.PagingError(err, h.policy))
}

// parseID extracts and validates the "id" URL parameter.
func parseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 || id > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	return uint(id), nil
}

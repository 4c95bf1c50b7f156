package article

import "github.com/gin-gonic/gin"

// ArticleModule implements the app.Module interface for the article domain.
type ArticleModule struct {
	handler     *ArticleHandler
	pageHandler *ArticlePageHandler
}

// NewModule creates a new ArticleModule with the given handlers.
// Panics if h or ph is nil.
func NewModule(h *ArticleHandler, ph *ArticlePageHandler) *ArticleModule {
	if h == nil {
		panic("article.NewModule: handler must not be nil")
	}
	if ph == nil {
		panic("article.NewModule: pageHandler must not be nil")
	}
	return &ArticleModule{handler: h, pageHandler: ph}
}

// RegisterRoutes registers article API and page routes.
func (m *ArticleModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	api.GET("/articles", m.handler.List)
	api.GET("/articles/:id", m.handler.Get)
	api.POST("/articles", m.handler.Create)

	pages.GET("/articles", m.pageHandler.ListPage)
	pages.GET("/articles/:id", m.pageHandler.DetailPage)
}

package article

// CreateArticleRequest represents the input for creating a new article.
type CreateArticleRequest struct {
	Title  string `json:"title" form:"title" binding:"required,min=3,max=200"`
	Author string `json:"author" form:"author" binding:"required,min=2,max=100"`
	Body   string `json:"body" form:"body" binding:"max=20000"`
}

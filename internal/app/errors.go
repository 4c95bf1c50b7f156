package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/alchemist/internal/pkg"
)

// errorTemplates maps HTTP status codes to their error pages.
var errorTemplates = map[int]string{
	http.StatusBadRequest:          "errors/400.html",
	http.StatusNotFound:            "errors/404.html",
	http.StatusInternalServerError: "errors/500.html",
}

// renderError answers with the JSON envelope for API paths and clients that
// ask for JSON only, and with an error page otherwise.
func renderError(c *gin.Context, code int, message string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || !wantsHTML(c) {
		c.JSON(code, pkg.Response{Code: code, Message: message})
		return
	}
	renderHTMLErrorPage(c, code)
}

// renderHTMLErrorPage renders the page for code, using errors/500.html for
// unmapped codes and plain text if rendering panics.
func renderHTMLErrorPage(c *gin.Context, code int) {
	defer func() {
		if recover() != nil {
			c.Data(code, "text/plain; charset=utf-8", []byte(fmt.Sprintf("%d %s", code, http.StatusText(code))))
		}
	}()

	tmpl, ok := errorTemplates[code]
	if !ok {
		tmpl = errorTemplates[http.StatusInternalServerError]
	}
	c.HTML(code, tmpl, gin.H{})
}

// wantsHTML reports whether the client accepts HTML: an explicit text/html,
// a browser-style */* or no Accept header at all. A JSON-only Accept wins.
func wantsHTML(c *gin.Context) bool {
	accept := strings.ToLower(strings.TrimSpace(c.GetHeader("Accept")))
	if strings.Contains(accept, "text/html") {
		return true
	}
	if strings.Contains(accept, "application/json") {
		return false
	}
	return accept == "" || strings.Contains(accept, "*/*")
}

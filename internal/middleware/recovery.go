package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
)

// errPanic is reported to clients after a recovered panic.
var errPanic = domain.NewAppError(domain.CodeInternal, "internal server error", nil)

// Recovery returns a gin middleware that recovers from panics and logs them
// with their stack. Browsers get errors/500.html; everything else gets the
// JSON envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", rec),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)

			c.Abort()
			if AcceptsHTML(c) {
				renderHTMLError(c)
				return
			}
			pkg.Error(c, errPanic)
		}()
		c.Next()
	}
}

// renderHTMLError renders errors/500.html, falling back to plain text when no
// HTML renderer is configured.
func renderHTMLError(c *gin.Context) {
	defer func() {
		if recover() != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("500 Internal Server Error"))
		}
	}()
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
}

// AcceptsHTML reports whether the request's Accept header names text/html.
func AcceptsHTML(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "text/html")
}

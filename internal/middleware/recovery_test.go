package middleware

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupRecoveryRouter(logger *slog.Logger, withTemplates bool) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger))
	if withTemplates {
		r.SetHTMLTemplate(template.Must(template.New("").Parse(`{{define "errors/500.html"}}<h1>Server error</h1>{{end}}`)))
	}
	r.GET("/panic", func(c *gin.Context) {
		panic("page source exploded")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRecovery(r *gin.Engine, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecovery_NoPanic_PassesThrough(t *testing.T) {
	var logBuf bytes.Buffer
	w := doRecovery(setupRecoveryRouter(newTestLogger(&logBuf), false), "/ok", "")

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
	if logBuf.Len() != 0 {
		t.Errorf("expected no log output, got:\n%s", logBuf.String())
	}
}

func TestRecovery_Panic_JSONEnvelope(t *testing.T) {
	for _, accept := range []string{"", "application/json", "*/*"} {
		t.Run("accept="+accept, func(t *testing.T) {
			var logBuf bytes.Buffer
			w := doRecovery(setupRecoveryRouter(newTestLogger(&logBuf), false), "/panic", accept)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("expected JSON, got %q", w.Body.String())
			}
			if code, ok := body["code"].(float64); !ok || int(code) != 500 {
				t.Errorf("expected code 500, got %v", body["code"])
			}
			if body["message"] != "internal server error" {
				t.Errorf("expected message 'internal server error', got %v", body["message"])
			}
			if val, exists := body["data"]; !exists || val != nil {
				t.Errorf("expected null data, got %v (exists=%v)", val, exists)
			}
		})
	}
}

func TestRecovery_Panic_HTMLTemplate(t *testing.T) {
	var logBuf bytes.Buffer
	w := doRecovery(setupRecoveryRouter(newTestLogger(&logBuf), true), "/panic", "text/html,application/xhtml+xml")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Server error") {
		t.Errorf("expected rendered error page, got %q", w.Body.String())
	}
}

func TestRecovery_Panic_HTMLFallbackWithoutRenderer(t *testing.T) {
	var logBuf bytes.Buffer
	w := doRecovery(setupRecoveryRouter(newTestLogger(&logBuf), false), "/panic", "text/html")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "500") {
		t.Errorf("expected plain text fallback, got %q", w.Body.String())
	}
}

func TestRecovery_Panic_LogsDetails(t *testing.T) {
	var logBuf bytes.Buffer
	doRecovery(setupRecoveryRouter(newTestLogger(&logBuf), false), "/panic", "")

	out := logBuf.String()
	for _, want := range []string{"panic recovered", "page source exploded", "path=/panic", "stack="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestAcceptsHTML(t *testing.T) {
	tests := map[string]bool{
		"":                          false,
		"application/json":          false,
		"text/html":                 true,
		"TEXT/HTML;q=0.9":           true,
		"application/xml,text/html": true,
	}
	for accept, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Accept", accept)
		if got := AcceptsHTML(c); got != want {
			t.Errorf("AcceptsHTML(%q) = %v, want %v", accept, got, want)
		}
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/internal/config"
	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/middleware"
	"github.com/simp-lee/alchemist/internal/module/article"
	"github.com/simp-lee/alchemist/internal/pkg"
	"github.com/simp-lee/alchemist/web"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New validates cfg and creates a fully wired App: logger, database, the
// article module, middleware, template rendering and routes. Everything opened
// before a failure is closed again.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if !success {
			closeLogger(log)
		}
	}()

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if !success {
			closeDB(db, log.Logger)
		}
	}()

	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(&domain.Article{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	articles, err := newArticleModule(db, cfg.Pagination)
	if err != nil {
		return nil, fmt.Errorf("setup article module: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestID(cfg.Server.TrustRequestID),
		middleware.Logger(log.Logger, "/health"),
	)

	debug := cfg.Server.Mode == gin.DebugMode
	fsys := fs.FS(web.EmbeddedFS)
	if debug {
		if fsys, err = resolveDebugWebFS(); err != nil {
			return nil, fmt.Errorf("resolve debug template fs: %w", err)
		}
	}
	renderer, err := NewTemplateRenderer(fsys, debug)
	if err != nil {
		return nil, fmt.Errorf("setup template renderer: %w", err)
	}
	engine.HTMLRender = renderer

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{articles},
		DB:      db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	log.Info("pagination configured",
		slog.Int("per_page", cfg.Pagination.PerPage),
		slog.String("template_mode", cfg.Pagination.TemplateMode),
		slog.String("malformed_page", cfg.Pagination.MalformedPage),
	)

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// newArticleModule wires repository → service → handlers for articles.
func newArticleModule(db *gorm.DB, cfg config.PaginationConfig) (*article.ArticleModule, error) {
	svc, err := article.NewArticleService(article.NewArticleRepository(db), cfg.Paging())
	if err != nil {
		return nil, err
	}
	policy := pkg.MalformedPagePolicy(cfg.MalformedPage)
	return article.NewModule(
		article.NewArticleHandler(svc, policy),
		article.NewArticlePageHandler(svc, policy, cfg.TemplateMode),
	), nil
}

// resolveDebugWebFS locates web/ on disk for template hot reload: first
// relative to this source file, then next to the executable.
func resolveDebugWebFS() (fs.FS, error) {
	var candidates []string
	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "web"))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "web"))
	}

	for _, dir := range candidates {
		dir = filepath.Clean(dir)
		if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
			return os.DirFS(dir), nil
		}
	}
	return nil, errors.New("debug web directory not found")
}

// Engine exposes the configured gin engine, mainly for tests.
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully and
// closes the database and the logger.
func (a *App) Run() error {
	if a == nil || a.cfg == nil || a.engine == nil {
		return errors.New("app is not initialized")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, a.cfg.Server.RequestTimeout())

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	closeDB(a.db, log)
	log.Info("server stopped")
	if a.logger != nil {
		closeLogger(a.logger)
	}
	return runErr
}

func closeDB(db *gorm.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("database close error", slog.Any("error", err))
		return
	}
	log.Info("database connection closed")
}

func closeLogger(log *logger.Logger) {
	if err := log.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}
}

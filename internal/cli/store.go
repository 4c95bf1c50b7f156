package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/simp-lee/logger"
	"github.com/uptrace/bun"
	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/internal/config"
	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/module/article"
)

// Supported values for --orm.
const (
	ormGorm = "gorm"
	ormBun  = "bun"
)

// store bundles an article repository with the resources backing it.
type store struct {
	repo    domain.ArticleRepository
	log     *logger.Logger
	migrate func(ctx context.Context) error
	gormDB  *gorm.DB
	closers []func() error
}

// openStore sets up logging to logOut and opens the configured database
// through orm.
func openStore(cfg *config.Config, orm string, logOut io.Writer) (*store, error) {
	if orm != ormGorm && orm != ormBun {
		return nil, fmt.Errorf("invalid --orm %q: must be %q or %q", orm, ormGorm, ormBun)
	}

	log, err := logger.New(append(config.BuildLoggerOpts(&cfg.Log), logger.WithConsoleWriter(logOut))...)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	s := &store{log: log}

	switch orm {
	case ormGorm:
		db, err := config.SetupDatabase(&cfg.Database, log.Logger)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("setup database: %w", err)
		}
		s.gormDB = db
		s.repo = article.NewArticleRepository(db)
		s.migrate = func(ctx context.Context) error {
			return db.WithContext(ctx).AutoMigrate(&domain.Article{})
		}
		s.closers = append(s.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	case ormBun:
		db, err := config.SetupBunDatabase(&cfg.Database, log.Logger)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("setup database: %w", err)
		}
		s.repo = article.NewBunArticleRepository(db)
		s.migrate = func(ctx context.Context) error {
			return createBunTable(ctx, db)
		}
		s.closers = append(s.closers, db.Close)
	}
	return s, nil
}

func createBunTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*domain.Article)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Close releases the database and then the logger.
func (s *store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	errs = append(errs, s.log.Close())
	return errors.Join(errs...)
}

package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
)

// sqliteDriverName is the database/sql driver registered by glebarez/go-sqlite,
// the same one the gorm dialector opens.
const sqliteDriverName = "sqlite"

// SetupBunDatabase opens a bun connection to the same database SetupDatabase
// would use. Queries are printed by bundebug when logger has debug enabled,
// or when BUNDEBUG is set in the environment.
func SetupBunDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*bun.DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	var (
		sqlDB *sql.DB
		err   error
		db    *bun.DB
	)
	switch cfg.Driver {
	case "sqlite":
		if err := ensureSQLiteDir(cfg.SQLite.Path); err != nil {
			return nil, err
		}
		sqlDB, err = sql.Open(sqliteDriverName, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		sqlDB, err = sql.Open("postgres", buildPostgresDSN(&cfg.Postgres))
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	if err := configurePool(sqlDB, &cfg.Pool); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(logger.Enabled(context.Background(), slog.LevelDebug)),
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	logPoolSettings(logger, "bun", cfg)
	return db, nil
}

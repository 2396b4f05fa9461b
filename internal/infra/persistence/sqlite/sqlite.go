// Package sqlite opens the embedded SQLite store used for single-node deployments and tests.
package sqlite

import (
	"context"
	"log/slog"

	"numatu/config"
	"numatu/internal/errors"
	"numatu/internal/infra/persistence/postgres"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const defaultDSN = "file:numatu.db?cache=shared"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the SQLite database named by store.sqlitePath.
func New(params Params) (*gorm.DB, error) {
	dsn := defaultDSN
	if params.Config.Store != nil && params.Config.Store.SQLitePath != "" {
		dsn = params.Config.Store.SQLitePath
	}

	opts := postgres.GormLogOptions{Driver: config.StoreDriverSQLite, Debug: params.Config.Env.Debug}
	if params.Config.Store != nil {
		opts.SlowThreshold = params.Config.Store.SlowQueryThreshold
	}

	db, err := Open(dsn, params.Logger, opts)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to dsn with a single writer connection.
func Open(dsn string, logger *slog.Logger, opts postgres.GormLogOptions) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 postgres.NewGormLogger(logger, opts),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY under concurrent claims.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

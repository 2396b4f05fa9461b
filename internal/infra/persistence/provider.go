// Package persistence selects the collection store backend.
package persistence

import (
	"log/slog"

	"numatu/config"
	"numatu/internal/domain/repository"
	"numatu/internal/errors"
	"numatu/internal/infra/persistence/memory"
	"numatu/internal/infra/persistence/postgres"
	"numatu/internal/infra/persistence/sqlite"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewCollectionRepository builds the repository for store.driver.
func NewCollectionRepository(params Params) (repository.CollectionRepository, error) {
	driver := config.StoreDriverMemory
	if params.Config.Store != nil {
		driver = params.Config.Store.Driver
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case config.StoreDriverMemory, "":
		params.Logger.Info("Using in-memory collection store")

		return memory.NewCollectionRepository(), nil
	case config.StoreDriverSQLite:
		db, err = sqlite.New(sqlite.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
	case config.StoreDriverPostgres:
		db, err = postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
	default:
		return nil, errors.Errorf("unsupported store driver: %s", driver)
	}
	if err != nil {
		return nil, err
	}

	if params.Config.Store != nil && params.Config.Store.AutoMigrate {
		if err := postgres.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	params.Logger.Info("Using SQL collection store", slog.String("driver", driver))

	return postgres.NewCollectionRepository(db), nil
}

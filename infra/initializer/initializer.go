// Package initializer builds the application dependency graph from
// configuration: logger, database, Redis revocation store, unit of work.
package initializer

import (
	"fmt"

	"github.com/lottohq/lottery/infra"
	"github.com/lottohq/lottery/infra/cache"
	infrarepo "github.com/lottohq/lottery/infra/repository"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/config"
)

// InitializeDependencies wires every external dependency the services need.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	revocation, err := cache.NewRedisRevocationStore(cfg.Redis.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &app.Deps{
		Uow:        infrarepo.NewUoW(db),
		Revocation: revocation,
		Logger:     logger,
	}, nil
}

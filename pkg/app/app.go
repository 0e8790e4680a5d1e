// Package app wires configuration, the unit of work and the services into
// one container handed to the HTTP layer. All construction is explicit; no
// package-level singletons.
package app

import (
	"log/slog"

	"github.com/lottohq/lottery/pkg/config"
	"github.com/lottohq/lottery/pkg/repository"
	"github.com/lottohq/lottery/pkg/service/auth"
	"github.com/lottohq/lottery/pkg/service/draw"
	"github.com/lottohq/lottery/pkg/service/prize"
	"github.com/lottohq/lottery/pkg/service/ticket"
	"github.com/lottohq/lottery/pkg/service/user"
)

// Deps contains the externally constructed dependencies the services need.
type Deps struct {
	Uow        repository.UnitOfWork
	Revocation auth.RevocationStore
	Logger     *slog.Logger
}

// App holds the configured services for the HTTP layer and the CLI.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService   *auth.Service
	UserService   *user.Service
	TicketService *ticket.Service
	PrizeService  *prize.Service
	DrawService   *draw.Service
}

// New builds the service graph from deps and config.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:   deps,
		Config: cfg,
		AuthService: auth.New(
			deps.Uow,
			deps.Revocation,
			cfg.Jwt.Secret,
			cfg.Jwt.Expiry,
			deps.Logger,
		),
		UserService:   user.New(deps.Uow, deps.Logger),
		TicketService: ticket.New(deps.Uow, deps.Logger),
		PrizeService:  prize.New(deps.Uow, deps.Logger),
		DrawService:   draw.New(deps.Uow, deps.Logger),
	}
}

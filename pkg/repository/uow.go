// Package repository defines the UnitOfWork contract and the per-entity
// repository interfaces implemented by infra/repository.
package repository

import (
	"context"
	"errors"
	"reflect"

	"github.com/lottohq/lottery/pkg/repository/draw"
	"github.com/lottohq/lottery/pkg/repository/prize"
	"github.com/lottohq/lottery/pkg/repository/ticket"
	"github.com/lottohq/lottery/pkg/repository/user"
)

// ErrRepositoryNotRegistered is returned by GetRepository for a type no
// constructor was registered for.
var ErrRepositoryNotRegistered = errors.New("repository type not registered")

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// GetRepository is part of UnitOfWork so every repository handed out inside
// Do is bound to the same DB session; using a repository from outside the
// transaction would break atomicity.
type UnitOfWork interface {
	// Do executes fn within one transaction boundary. The UnitOfWork passed
	// to fn hands out repositories bound to that transaction. Any error
	// returned by fn rolls the transaction back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	// Example:
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*user.Repository)(nil)).Elem())
	//   repo := repoAny.(user.Repository)
	GetRepository(repoType reflect.Type) (any, error)

	// Typed convenience accessors.
	UserRepository() (user.Repository, error)
	TicketRepository() (ticket.Repository, error)
	PrizeRepository() (prize.Repository, error)
	DrawRepository() (draw.Repository, error)
}

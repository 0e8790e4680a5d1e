package repository

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	drawinfra "github.com/lottohq/lottery/infra/repository/draw"
	prizeinfra "github.com/lottohq/lottery/infra/repository/prize"
	ticketinfra "github.com/lottohq/lottery/infra/repository/ticket"
	userinfra "github.com/lottohq/lottery/infra/repository/user"
	repo "github.com/lottohq/lottery/pkg/repository"
	drawrepo "github.com/lottohq/lottery/pkg/repository/draw"
	prizerepo "github.com/lottohq/lottery/pkg/repository/prize"
	ticketrepo "github.com/lottohq/lottery/pkg/repository/ticket"
	userrepo "github.com/lottohq/lottery/pkg/repository/user"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories handed out inside Do share the transaction
// session, which is what makes the engines' conditional writes atomic with
// their precondition reads.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*userrepo.Repository)(nil)).Elem():   func(db *gorm.DB) any { return userinfra.New(db) },
			reflect.TypeOf((*ticketrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return ticketinfra.New(db) },
			reflect.TypeOf((*prizerepo.Repository)(nil)).Elem():  func(db *gorm.DB) any { return prizeinfra.New(db) },
			reflect.TypeOf((*drawrepo.Repository)(nil)).Elem():   func(db *gorm.DB) any { return drawinfra.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW bound to that
// transaction. An error from fn rolls the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// session returns the transaction when inside Do, the base session otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository provides generic access to repositories using the current
// transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("%w: %v", repo.ErrRepositoryNotRegistered, repoType)
	}
	return constructor(u.session()), nil
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return userinfra.New(u.session()), nil
}

// TicketRepository returns the ticket repository bound to the current session.
func (u *UoW) TicketRepository() (ticketrepo.Repository, error) {
	return ticketinfra.New(u.session()), nil
}

// PrizeRepository returns the prize repository bound to the current session.
func (u *UoW) PrizeRepository() (prizerepo.Repository, error) {
	return prizeinfra.New(u.session()), nil
}

// DrawRepository returns the draw repository bound to the current session.
func (u *UoW) DrawRepository() (drawrepo.Repository, error) {
	return drawinfra.New(u.session()), nil
}

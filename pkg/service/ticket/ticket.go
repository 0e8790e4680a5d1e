// Package ticket provides business logic for lottery tickets, including the
// ticket ownership engine that moves a ticket from unsold to owned.
package ticket

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	domainticket "github.com/lottohq/lottery/pkg/domain/ticket"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/repository"
)

// Service provides ticket operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a ticket Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a new unsold ticket, rejecting duplicate numbers.
func (s *Service) Create(
	ctx context.Context,
	number string,
	price money.Amount,
	drawID *uuid.UUID,
) (t *dto.TicketRead, err error) {
	log := s.logger.With("context", "CreateTicket", "ticketNumber", number)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		existing, err := repo.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateTicketNumber
		}
		newTicket, err := domainticket.New(number, price, drawID)
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.TicketCreate{
			ID:           newTicket.ID,
			TicketNumber: newTicket.TicketNumber,
			Price:        newTicket.Price,
			DrawID:       newTicket.DrawID,
		}); err != nil {
			return err
		}
		t, err = repo.Get(ctx, newTicket.ID)
		return err
	})
	if err != nil {
		log.Error("CreateTicket failed", "error", err)
		t = nil
		return
	}
	log.Info("CreateTicket successful", "ticketID", t.ID)
	return
}

// Purchase transfers an unsold ticket to the buyer, debiting the price.
//
// Preconditions are checked in order inside one transaction: ticket exists,
// buyer loadable, funds sufficient, ticket unsold. The final writes re-check
// their own preconditions (money >= price, owner IS NULL) inside the UPDATE
// statements, so two concurrent purchases of the same ticket cannot both
// commit; the loser observes ErrTicketAlreadySold.
func (s *Service) Purchase(
	ctx context.Context,
	buyerID uuid.UUID,
	ticketNumber string,
) (t *dto.TicketRead, err error) {
	log := s.logger.With("context", "Purchase", "buyerID", buyerID, "ticketNumber", ticketNumber)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ticketRepo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}

		found, err := ticketRepo.GetByNumber(ctx, ticketNumber)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrTicketNotFound
		}
		buyer, err := userRepo.Get(ctx, buyerID)
		if err != nil {
			return err
		}
		if buyer == nil {
			return domain.ErrUserInvalid
		}
		if !buyer.Money.Covers(found.Price) {
			return domain.ErrInsufficientFunds
		}
		if found.OwnerID != nil {
			return domain.ErrTicketAlreadySold
		}

		if err = userRepo.Debit(ctx, buyerID, found.Price); err != nil {
			return err
		}
		if err = ticketRepo.ClaimOwnership(ctx, found.ID, buyerID); err != nil {
			return err
		}

		t, err = ticketRepo.Get(ctx, found.ID)
		return err
	})
	if err != nil {
		log.Error("Purchase failed", "error", err)
		t = nil
		return
	}
	log.Info("Purchase successful", "ticketID", t.ID)
	return
}

// Get retrieves a ticket by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (t *dto.TicketRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		t, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTicketNotFound
		}
		return nil
	})
	if err != nil {
		t = nil
	}
	return
}

// List retrieves tickets matching the filter plus the total match count.
func (s *Service) List(
	ctx context.Context,
	filter dto.TicketFilter,
	opts dto.ListOptions,
) (tickets []*dto.TicketRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		total, err = repo.Count(ctx, filter)
		if err != nil {
			return err
		}
		tickets, err = repo.List(ctx, filter, opts)
		return err
	})
	if err != nil {
		tickets, total = nil, 0
	}
	return
}

// Update patches admin-editable fields of an existing ticket.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.TicketUpdate,
) (t *dto.TicketRead, err error) {
	log := s.logger.With("context", "UpdateTicket", "ticketID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}
		if update.TicketNumber != nil && *update.TicketNumber != existing.TicketNumber {
			collision, err := repo.GetByNumber(ctx, *update.TicketNumber)
			if err != nil {
				return err
			}
			if collision != nil {
				return domain.ErrDuplicateTicketNumber
			}
		}
		if err = repo.Update(ctx, id, update); err != nil {
			return err
		}
		t, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("UpdateTicket failed", "error", err)
		t = nil
	}
	return
}

// Delete removes a ticket by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteTicket", "ticketID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Error("DeleteTicket failed", "error", err)
	}
	return err
}

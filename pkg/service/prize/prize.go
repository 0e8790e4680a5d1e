// Package prize provides business logic for prizes, including the claim
// engine that pays out a winning ticket's owner exactly once.
package prize

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	domainprize "github.com/lottohq/lottery/pkg/domain/prize"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/repository"
)

// Service provides prize operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a prize Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create binds prizes to tickets according to the creation mode.
//
// RANKED binds one prize to the ticket whose number matches exactly; the
// result is the single created prize. LAST binds one prize to every ticket
// whose number ends with the given digits, skipping tickets that already
// carry a prize; the result is a bulk count. Exactly one of the two returns
// is non-nil on success.
func (s *Service) Create(
	ctx context.Context,
	mode domainprize.CreationMode,
	ticketNumber string,
	description string,
	amount money.Amount,
) (created *dto.PrizeRead, bulk *dto.PrizeBulkResult, err error) {
	log := s.logger.With("context", "CreatePrize", "mode", mode, "ticketNumber", ticketNumber)
	if !mode.Valid() {
		err = domain.ErrInvalidCreationMode
		log.Error("CreatePrize failed", "error", err)
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		switch mode {
		case domainprize.ModeRanked:
			created, err = s.createRanked(ctx, uow, ticketNumber, description, amount)
		case domainprize.ModeLast:
			bulk, err = s.createLast(ctx, uow, ticketNumber, description, amount)
		}
		return err
	})
	if err != nil {
		log.Error("CreatePrize failed", "error", err)
		created, bulk = nil, nil
		return
	}
	log.Info("CreatePrize successful")
	return
}

func (s *Service) createRanked(
	ctx context.Context,
	uow repository.UnitOfWork,
	ticketNumber, description string,
	amount money.Amount,
) (*dto.PrizeRead, error) {
	ticketRepo, err := uow.TicketRepository()
	if err != nil {
		return nil, err
	}
	prizeRepo, err := uow.PrizeRepository()
	if err != nil {
		return nil, err
	}

	winner, err := ticketRepo.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, domain.ErrTicketNotFound
	}
	taken, err := prizeRepo.WinningTicketTaken(ctx, winner.ID, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrPrizeAlreadyExists
	}

	newPrize, err := domainprize.New(description, amount, winner.ID)
	if err != nil {
		return nil, err
	}
	if err = prizeRepo.Create(ctx, &dto.PrizeCreate{
		ID:               newPrize.ID,
		PrizeDescription: newPrize.PrizeDescription,
		PrizeAmount:      newPrize.PrizeAmount,
		WinningTicketID:  newPrize.WinningTicketID,
		Status:           string(newPrize.Status),
	}); err != nil {
		return nil, err
	}
	return prizeRepo.Get(ctx, newPrize.ID)
}

func (s *Service) createLast(
	ctx context.Context,
	uow repository.UnitOfWork,
	suffix, description string,
	amount money.Amount,
) (*dto.PrizeBulkResult, error) {
	ticketRepo, err := uow.TicketRepository()
	if err != nil {
		return nil, err
	}
	prizeRepo, err := uow.PrizeRepository()
	if err != nil {
		return nil, err
	}

	matches, err := ticketRepo.List(ctx, dto.TicketFilter{NumberSuffix: suffix}, dto.ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoMatchingTickets
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, t := range matches {
		ids = append(ids, t.ID)
	}
	existing, err := prizeRepo.ListByTicketIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	taken := make(map[uuid.UUID]bool, len(existing))
	for _, p := range existing {
		taken[p.WinningTicketID] = true
	}

	creates := make([]*dto.PrizeCreate, 0, len(matches))
	for _, t := range matches {
		if taken[t.ID] {
			continue
		}
		newPrize, err := domainprize.New(description, amount, t.ID)
		if err != nil {
			return nil, err
		}
		creates = append(creates, &dto.PrizeCreate{
			ID:               newPrize.ID,
			PrizeDescription: newPrize.PrizeDescription,
			PrizeAmount:      newPrize.PrizeAmount,
			WinningTicketID:  newPrize.WinningTicketID,
			Status:           string(newPrize.Status),
		})
	}
	count, err := prizeRepo.CreateMany(ctx, creates)
	if err != nil {
		return nil, err
	}
	return &dto.PrizeBulkResult{Count: count}, nil
}

// Claim pays the prize amount to the winning ticket's owner and marks the
// prize claimed.
//
// Preconditions are checked in order inside one transaction: prize exists,
// winning ticket exists and has an owner, claimant is that owner, prize is
// still unclaimed. MarkClaimed re-checks the unclaimed status inside the
// UPDATE statement, so of two concurrent claims exactly one pays out; the
// loser observes ErrPrizeAlreadyClaimed.
func (s *Service) Claim(
	ctx context.Context,
	claimantID, prizeID uuid.UUID,
) (p *dto.PrizeRead, err error) {
	log := s.logger.With("context", "ClaimPrize", "claimantID", claimantID, "prizeID", prizeID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		prizeRepo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		ticketRepo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}

		found, err := prizeRepo.Get(ctx, prizeID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrPrizeNotFound
		}
		winner, err := ticketRepo.Get(ctx, found.WinningTicketID)
		if err != nil {
			return err
		}
		if winner == nil || winner.OwnerID == nil {
			return domain.ErrWinningTicketNotFound
		}
		if *winner.OwnerID != claimantID {
			return domain.ErrNotPrizeOwner
		}
		if found.Status == string(domainprize.StatusClaimed) {
			return domain.ErrPrizeAlreadyClaimed
		}

		if err = prizeRepo.MarkClaimed(ctx, prizeID); err != nil {
			return err
		}
		if err = userRepo.Credit(ctx, claimantID, found.PrizeAmount); err != nil {
			return err
		}

		p, err = prizeRepo.Get(ctx, prizeID)
		return err
	})
	if err != nil {
		log.Error("ClaimPrize failed", "error", err)
		p = nil
		return
	}
	log.Info("ClaimPrize successful", "amount", p.PrizeAmount)
	return
}

// GetForOwnTicket looks up the prize bound to a ticket the caller owns.
// Callers who do not own the ticket get ErrForbidden regardless of whether a
// prize exists, so the endpoint leaks nothing about other users' tickets.
func (s *Service) GetForOwnTicket(
	ctx context.Context,
	callerID, ticketID uuid.UUID,
) (p *dto.PrizeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ticketRepo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		prizeRepo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		t, err := ticketRepo.Get(ctx, ticketID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTicketNotFound
		}
		if t.OwnerID == nil || *t.OwnerID != callerID {
			return domain.ErrForbidden
		}
		p, err = prizeRepo.GetByTicketID(ctx, ticketID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPrizeNotFound
		}
		return nil
	})
	if err != nil {
		p = nil
	}
	return
}

// Get retrieves a prize by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (p *dto.PrizeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		p, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPrizeNotFound
		}
		return nil
	})
	if err != nil {
		p = nil
	}
	return
}

// List retrieves prizes with pagination plus the total count.
func (s *Service) List(
	ctx context.Context,
	opts dto.ListOptions,
) (prizes []*dto.PrizeRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		total, err = repo.Count(ctx)
		if err != nil {
			return err
		}
		prizes, err = repo.List(ctx, opts)
		return err
	})
	if err != nil {
		prizes, total = nil, 0
	}
	return
}

// Update patches admin-editable fields of an existing prize. Re-pointing the
// prize at a ticket that already carries one is rejected.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.PrizeUpdate,
) (p *dto.PrizeRead, err error) {
	log := s.logger.With("context", "UpdatePrize", "prizeID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrPrizeNotFound
		}
		if update.WinningTicketID != nil && *update.WinningTicketID != existing.WinningTicketID {
			taken, err := repo.WinningTicketTaken(ctx, *update.WinningTicketID, &id)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrPrizeAlreadyExists
			}
		}
		if err = repo.Update(ctx, id, update); err != nil {
			return err
		}
		p, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("UpdatePrize failed", "error", err)
		p = nil
	}
	return
}

// Delete removes a prize by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.With("context", "DeletePrize", "prizeID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrPrizeNotFound
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Error("DeletePrize failed", "error", err)
	}
	return err
}

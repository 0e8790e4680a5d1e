// Package draw provides CRUD for lottery draws.
package draw

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	domaindraw "github.com/lottohq/lottery/pkg/domain/draw"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/repository"
)

// Service provides draw operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a draw Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a new open draw.
func (s *Service) Create(ctx context.Context, create *dto.DrawCreate) (d *dto.DrawRead, err error) {
	log := s.logger.With("context", "CreateDraw", "name", create.Name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.DrawRepository()
		if err != nil {
			return err
		}
		newDraw, err := domaindraw.New(create.Name, create.DrawDate)
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.DrawCreate{
			ID:       newDraw.ID,
			Name:     newDraw.Name,
			DrawDate: newDraw.DrawDate,
			Open:     newDraw.Open,
		}); err != nil {
			return err
		}
		d, err = repo.Get(ctx, newDraw.ID)
		return err
	})
	if err != nil {
		log.Error("CreateDraw failed", "error", err)
		d = nil
	}
	return
}

// Get retrieves a draw by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (d *dto.DrawRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.DrawRepository()
		if err != nil {
			return err
		}
		d, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrDrawNotFound
		}
		return nil
	})
	if err != nil {
		d = nil
	}
	return
}

// List retrieves draws with pagination plus the total count.
func (s *Service) List(
	ctx context.Context,
	opts dto.ListOptions,
) (draws []*dto.DrawRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.DrawRepository()
		if err != nil {
			return err
		}
		total, err = repo.Count(ctx)
		if err != nil {
			return err
		}
		draws, err = repo.List(ctx, opts)
		return err
	})
	if err != nil {
		draws, total = nil, 0
	}
	return
}

// Update patches an existing draw.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.DrawUpdate,
) (d *dto.DrawRead, err error) {
	log := s.logger.With("context", "UpdateDraw", "drawID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.DrawRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrDrawNotFound
		}
		if err = repo.Update(ctx, id, update); err != nil {
			return err
		}
		d, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("UpdateDraw failed", "error", err)
		d = nil
	}
	return
}

// Delete removes a draw by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteDraw", "drawID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.DrawRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrDrawNotFound
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Error("DeleteDraw failed", "error", err)
	}
	return err
}

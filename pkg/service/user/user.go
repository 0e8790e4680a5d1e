// Package user provides business logic for accounts: registration with triple
// uniqueness reporting, admin CRUD, and the destructive system reset.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	domainuser "github.com/lottohq/lottery/pkg/domain/user"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/repository"
	"github.com/lottohq/lottery/pkg/utils"
)

// Seed credentials written by SystemReset. The seeded admin is meant for
// local and demo environments; production deployments change it immediately.
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin"
	SeedAdminEmail    = "admin@lottohq.local"
	SeedAdminPhone    = "0000000000"
)

// Service provides user operations on top of a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a pending user account. When any of username, email or
// phone is already taken the returned UserFieldsTaken reports every
// colliding field, not just the first, and err is ErrDuplicateUserField.
func (s *Service) Register(
	ctx context.Context,
	username, email, phone, password string,
) (u *dto.UserRead, taken dto.UserFieldsTaken, err error) {
	log := s.logger.With("context", "Register", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err = repo.FieldsTaken(ctx, username, email, phone, nil)
		if err != nil {
			return err
		}
		if taken.Any() {
			return domain.ErrDuplicateUserField
		}
		newUser, err := domainuser.New(username, email, phone, password)
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.UserCreate{
			ID:       newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
			Phone:    newUser.Phone,
			Password: newUser.Password,
			Role:     string(newUser.Role),
			Money:    newUser.Money,
			Status:   string(newUser.Status),
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, newUser.ID)
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		u = nil
		return
	}
	log.Info("Register successful", "userID", u.ID)
	return
}

// CheckUniqueFields reports which of the given identifying fields are already
// taken. Empty fields are not checked.
func (s *Service) CheckUniqueFields(
	ctx context.Context,
	username, email, phone string,
) (taken dto.UserFieldsTaken, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err = repo.FieldsTaken(ctx, username, email, phone, nil)
		return err
	})
	return
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

// List retrieves users with pagination plus the total count.
func (s *Service) List(
	ctx context.Context,
	opts dto.ListOptions,
) (users []*dto.UserRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		total, err = repo.Count(ctx)
		if err != nil {
			return err
		}
		users, err = repo.List(ctx, opts)
		return err
	})
	if err != nil {
		users, total = nil, 0
	}
	return
}

// Update patches an existing user. Identifying-field changes are re-checked
// for uniqueness against every other user; a plaintext password in the DTO
// is hashed before it reaches the repository.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.UserUpdate,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "UpdateUser", "userID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrUserNotFound
		}

		var username, email, phone string
		if update.Username != nil {
			username = *update.Username
		}
		if update.Email != nil {
			email = *update.Email
		}
		if update.Phone != nil {
			phone = *update.Phone
		}
		if username != "" || email != "" || phone != "" {
			taken, err := repo.FieldsTaken(ctx, username, email, phone, &id)
			if err != nil {
				return err
			}
			if taken.Any() {
				return domain.ErrDuplicateUserField
			}
		}
		if update.Password != nil {
			hashed, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			update.Password = &hashed
		}
		if update.Role != nil && !domainuser.Role(*update.Role).Valid() {
			return domain.ErrUserInvalid
		}

		if err = repo.Update(ctx, id, update); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("UpdateUser failed", "error", err)
		u = nil
	}
	return
}

// Delete removes a user by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteUser", "userID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrUserNotFound
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Error("DeleteUser failed", "error", err)
	}
	return err
}

// SystemReset wipes every prize, ticket and user in one transaction, then
// seeds a single approved admin account. Destructive; admin only.
func (s *Service) SystemReset(ctx context.Context) (admin *dto.UserRead, err error) {
	log := s.logger.With("context", "SystemReset")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ticketRepo, err := uow.TicketRepository()
		if err != nil {
			return err
		}
		prizeRepo, err := uow.PrizeRepository()
		if err != nil {
			return err
		}

		// Prizes reference tickets, tickets reference users.
		if err = prizeRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err = ticketRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err = userRepo.DeleteAll(ctx); err != nil {
			return err
		}

		seed, err := domainuser.New(SeedAdminUsername, SeedAdminEmail, SeedAdminPhone, SeedAdminPassword)
		if err != nil {
			return err
		}
		if err = userRepo.Create(ctx, &dto.UserCreate{
			ID:       seed.ID,
			Username: seed.Username,
			Email:    seed.Email,
			Phone:    seed.Phone,
			Password: seed.Password,
			Role:     string(domainuser.RoleAdmin),
			Money:    0,
			Status:   string(domainuser.StatusApproved),
		}); err != nil {
			return err
		}
		admin, err = userRepo.Get(ctx, seed.ID)
		return err
	})
	if err != nil {
		log.Error("SystemReset failed", "error", err)
		admin = nil
		return
	}
	log.Warn("SystemReset completed", "adminID", admin.ID)
	return
}

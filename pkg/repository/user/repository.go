// Package user defines the user repository contract.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
)

// Repository defines the data access operations for users.
//
// Credit and Debit are the only paths that mutate the money column; both are
// conditional single-statement updates so the balance precondition is
// re-validated atomically with the write.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update patches an existing user by ID; nil DTO fields are untouched.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// Get retrieves a user by ID, or nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByUsername retrieves a user by username, or nil when absent. The
	// returned DTO carries the password hash for credential checks.
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)

	// FieldsTaken reports which of username/email/phone already belong to a
	// different user. Empty arguments are not checked; excludeID, when
	// non-nil, ignores collisions with that user (admin-edit path).
	FieldsTaken(ctx context.Context, username, email, phone string, excludeID *uuid.UUID) (dto.UserFieldsTaken, error)

	// List retrieves users with pagination.
	List(ctx context.Context, opts dto.ListOptions) ([]*dto.UserRead, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// Delete removes a user by ID (hard delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every user row. Used by the system reset.
	DeleteAll(ctx context.Context) error

	// Debit subtracts amount from the user's balance with a conditional
	// update (money >= amount). Zero rows affected surfaces
	// domain.ErrInsufficientFunds.
	Debit(ctx context.Context, id uuid.UUID, amount money.Amount) error

	// Credit adds amount to the user's balance. A missing row surfaces
	// domain.ErrUserNotFound.
	Credit(ctx context.Context, id uuid.UUID, amount money.Amount) error
}

// Package prize defines the prize repository contract.
package prize

import (
	"context"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/dto"
)

// Repository defines the data access operations for prizes.
type Repository interface {
	// Create inserts a new prize record from a DTO.
	Create(ctx context.Context, create *dto.PrizeCreate) error

	// CreateMany inserts a batch of prize records and returns how many rows
	// were written.
	CreateMany(ctx context.Context, creates []*dto.PrizeCreate) (int, error)

	// Update patches an existing prize by ID; nil DTO fields are untouched.
	Update(ctx context.Context, id uuid.UUID, update *dto.PrizeUpdate) error

	// Get retrieves a prize by ID, or nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.PrizeRead, error)

	// GetByTicketID retrieves the prize bound to a winning ticket, or nil
	// when the ticket has none.
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*dto.PrizeRead, error)

	// ListByTicketIDs retrieves all prizes bound to any of the given tickets.
	ListByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) ([]*dto.PrizeRead, error)

	// List retrieves prizes with pagination and sorting.
	List(ctx context.Context, opts dto.ListOptions) ([]*dto.PrizeRead, error)

	// Count returns the total number of prizes.
	Count(ctx context.Context) (int64, error)

	// Delete removes a prize by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every prize row. Used by the system reset.
	DeleteAll(ctx context.Context) error

	// WinningTicketTaken reports whether another prize already references the
	// ticket. excludeID, when non-nil, ignores the prize being updated.
	WinningTicketTaken(ctx context.Context, ticketID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// MarkClaimed flips the prize status to claimed with a conditional update
	// (status = 'unclaimed'). Zero rows affected surfaces
	// domain.ErrPrizeAlreadyClaimed, so a duplicate claim never double-pays.
	MarkClaimed(ctx context.Context, prizeID uuid.UUID) error
}

// Package ticket defines the ticket repository contract.
package ticket

import (
	"context"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/dto"
)

// Repository defines the data access operations for lottery tickets.
type Repository interface {
	// Create inserts a new ticket record from a DTO.
	Create(ctx context.Context, create *dto.TicketCreate) error

	// Update patches an existing ticket by ID; nil DTO fields are untouched.
	Update(ctx context.Context, id uuid.UUID, update *dto.TicketUpdate) error

	// Get retrieves a ticket by ID, or nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.TicketRead, error)

	// GetByNumber retrieves a ticket by its unique number, or nil when absent.
	GetByNumber(ctx context.Context, number string) (*dto.TicketRead, error)

	// List retrieves tickets matching the filter with pagination and sorting.
	List(ctx context.Context, filter dto.TicketFilter, opts dto.ListOptions) ([]*dto.TicketRead, error)

	// Count returns the number of tickets matching the filter.
	Count(ctx context.Context, filter dto.TicketFilter) (int64, error)

	// Delete removes a ticket by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every ticket row. Used by the system reset.
	DeleteAll(ctx context.Context) error

	// ClaimOwnership sets the ticket's owner with a conditional update
	// (owner_id IS NULL). Zero rows affected surfaces
	// domain.ErrTicketAlreadySold, so of two concurrent purchasers exactly
	// one wins.
	ClaimOwnership(ctx context.Context, ticketID, ownerID uuid.UUID) error
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
)

// TicketCreate represents the data needed to persist a new ticket.
type TicketCreate struct {
	ID           uuid.UUID
	TicketNumber string
	Price        money.Amount
	DrawID       *uuid.UUID
}

// TicketUpdate represents the admin-editable ticket fields; nil fields are
// left untouched. Ownership is never set through this path.
type TicketUpdate struct {
	TicketNumber *string
	Price        *money.Amount
	DrawID       *uuid.UUID
}

// TicketRead is a read-optimized view of a ticket.
type TicketRead struct {
	ID           uuid.UUID    `json:"id"`
	TicketNumber string       `json:"ticket_number"`
	Price        money.Amount `json:"price"`
	OwnerID      *uuid.UUID   `json:"owner_id,omitempty"`
	DrawID       *uuid.UUID   `json:"draw_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// OwnedTicketRead is the owner-facing view: price and owner are omitted from
// the payload.
type OwnedTicketRead struct {
	ID           uuid.UUID  `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	DrawID       *uuid.UUID `json:"draw_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	// NumberContains matches ticket numbers containing the substring.
	NumberContains string
	// NumberSuffix matches ticket numbers ending with the suffix.
	NumberSuffix string
	// OwnerID restricts to tickets owned by the given user.
	OwnerID *uuid.UUID
}

// ListOptions carries pagination and sorting for listing queries.
type ListOptions struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// Offset returns the row offset for the current page.
func (o ListOptions) Offset() int {
	page := o.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * o.Limit
}

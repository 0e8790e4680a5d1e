// Package ticket holds the lottery ticket entity.
//
// A ticket is unsold until its OwnerID is set by a successful purchase.
// Ownership is set exactly once; there is no resale transition.
package ticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
)

// NumberLength is the fixed length of a ticket number.
const NumberLength = 6

// Ticket represents a uniquely numbered, purchasable entry into a draw.
type Ticket struct {
	ID           uuid.UUID    `json:"id"`
	TicketNumber string       `json:"ticket_number"`
	Price        money.Amount `json:"price"`
	OwnerID      *uuid.UUID   `json:"owner_id,omitempty"`
	DrawID       *uuid.UUID   `json:"draw_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Sold reports whether the ticket already has an owner.
func (t *Ticket) Sold() bool { return t.OwnerID != nil }

// New creates an unsold ticket.
func New(number string, price money.Amount, drawID *uuid.UUID) (*Ticket, error) {
	if len(number) != NumberLength {
		return nil, errors.New("ticket number must be 6 characters")
	}
	if price <= 0 {
		return nil, errors.New("ticket price must be positive")
	}
	now := time.Now().UTC()
	return &Ticket{
		ID:           uuid.New(),
		TicketNumber: number,
		Price:        price,
		DrawID:       drawID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

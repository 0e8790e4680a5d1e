// Package prize holds the prize entity and its one-way claim state machine.
package prize

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
)

// Status is the claim state of a prize. The only transition is
// unclaimed -> claimed; claimed is terminal.
type Status string

const (
	StatusUnclaimed Status = "unclaimed"
	StatusClaimed   Status = "claimed"
)

// CreationMode selects how an admin binds prizes to tickets.
type CreationMode string

const (
	// ModeRanked creates one prize for the ticket whose number matches exactly.
	ModeRanked CreationMode = "RANKED"
	// ModeLast creates one prize per ticket whose number ends with the given
	// suffix, skipping tickets that already carry a prize.
	ModeLast CreationMode = "LAST"
)

// Valid reports whether m is a known creation mode.
func (m CreationMode) Valid() bool {
	return m == ModeRanked || m == ModeLast
}

// Prize is a monetary award bound to exactly one winning ticket.
type Prize struct {
	ID               uuid.UUID    `json:"id"`
	PrizeDescription string       `json:"prize_description"`
	PrizeAmount      money.Amount `json:"prize_amount"`
	WinningTicketID  uuid.UUID    `json:"winning_ticket_id"`
	Status           Status       `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// New creates an unclaimed prize for the given winning ticket.
func New(description string, amount money.Amount, winningTicketID uuid.UUID) (*Prize, error) {
	if amount <= 0 {
		return nil, errors.New("prize amount must be positive")
	}
	if winningTicketID == uuid.Nil {
		return nil, errors.New("winning ticket is required")
	}
	now := time.Now().UTC()
	return &Prize{
		ID:               uuid.New(),
		PrizeDescription: description,
		PrizeAmount:      amount,
		WinningTicketID:  winningTicketID,
		Status:           StatusUnclaimed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
)

// PrizeCreate represents the data needed to persist a new prize.
type PrizeCreate struct {
	ID               uuid.UUID
	PrizeDescription string
	PrizeAmount      money.Amount
	WinningTicketID  uuid.UUID
	Status           string
}

// PrizeUpdate represents the admin-editable prize fields; nil fields are left
// untouched. Status is never set through this path; claiming owns it.
type PrizeUpdate struct {
	PrizeDescription *string
	PrizeAmount      *money.Amount
	WinningTicketID  *uuid.UUID
}

// PrizeRead is a read-optimized view of a prize.
type PrizeRead struct {
	ID               uuid.UUID    `json:"id"`
	PrizeDescription string       `json:"prize_description"`
	PrizeAmount      money.Amount `json:"prize_amount"`
	WinningTicketID  uuid.UUID    `json:"winning_ticket_id"`
	Status           string       `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PrizeBulkResult reports how many prize rows a bulk creation produced.
type PrizeBulkResult struct {
	Count int `json:"count"`
}

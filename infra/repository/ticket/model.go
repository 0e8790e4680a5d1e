package ticket

import (
	"time"

	"github.com/google/uuid"
)

// LotteryTicket represents a ticket record in the database. OwnerID stays
// null until the ticket is sold; it is written only by ClaimOwnership.
type LotteryTicket struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	TicketNumber string     `gorm:"uniqueIndex;not null;size:6"`
	Price        int64      `gorm:"not null"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`
	DrawID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the LotteryTicket model.
func (LotteryTicket) TableName() string {
	return "lottery_tickets"
}

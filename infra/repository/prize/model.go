package prize

import (
	"time"

	"github.com/google/uuid"
)

// Prize represents a prize record in the database. The unique index on
// WinningTicketID enforces at most one prize per ticket at the storage level,
// behind the service-level uniqueness check.
type Prize struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	PrizeDescription string    `gorm:"size:255"`
	PrizeAmount      int64     `gorm:"not null"`
	WinningTicketID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status           string    `gorm:"type:varchar(16);not null;default:'unclaimed'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Prize model.
func (Prize) TableName() string {
	return "prizes"
}

package draw

import (
	"time"

	"github.com/google/uuid"
)

// LotteryDraw represents a draw record in the database.
type LotteryDraw struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:255"`
	DrawDate  time.Time `gorm:"not null"`
	Open      bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the LotteryDraw model.
func (LotteryDraw) TableName() string {
	return "lottery_draws"
}

package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database. Hard deletes only; the money
// column is guarded by a non-negative check constraint as a last line of
// defense behind the conditional debit.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Phone     string    `gorm:"uniqueIndex;not null;size:20"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(16);not null;default:'user'"`
	Money     int64     `gorm:"not null;default:0;check:money >= 0"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Package dto holds the create/update/read shapes exchanged between the
// services and the repositories.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
)

// UserCreate represents the data needed to persist a new user.
type UserCreate struct {
	ID       uuid.UUID
	Username string
	Email    string
	Phone    string
	Password string
	Role     string
	Money    money.Amount
	Status   string
}

// UserUpdate represents the fields that can change on a user; nil fields are
// left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Phone    *string
	Password *string
	Role     *string
	Money    *money.Amount
	Status   *string
}

// UserRead is a read-optimized view of a user. The password hash never leaves
// the repository layer except for credential checks in the auth service.
type UserRead struct {
	ID             uuid.UUID    `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	HashedPassword string       `json:"-"`
	Role           string       `json:"role"`
	Money          money.Amount `json:"money"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// UserFieldsTaken reports which identifying fields already belong to another
// user. All three collisions are reported, not just the first.
type UserFieldsTaken struct {
	UsernameTaken bool `json:"usernameTaken"`
	EmailTaken    bool `json:"emailTaken"`
	PhoneTaken    bool `json:"phoneTaken"`
}

// Any reports whether at least one field collides.
func (f UserFieldsTaken) Any() bool {
	return f.UsernameTaken || f.EmailTaken || f.PhoneTaken
}

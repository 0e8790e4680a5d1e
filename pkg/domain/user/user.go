// Package user holds the user entity and its lifecycle rules.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/utils"
)

// Role is the authorization role carried in the JWT claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Status is the account approval state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// User represents a registered account with a monetary balance.
// Money is stored in minor units and must never be observed negative.
type User struct {
	ID        uuid.UUID    `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Password  string       `json:"-"`
	Role      Role         `json:"role"`
	Money     money.Amount `json:"money"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// New creates a pending user with a bcrypt-hashed password.
func New(username, email, phone, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if phone == "" {
		return nil, errors.New("phone cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Phone:     phone,
		Password:  hashed,
		Role:      RoleUser,
		Money:     0,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

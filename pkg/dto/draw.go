package dto

import (
	"time"

	"github.com/google/uuid"
)

// DrawCreate represents the data needed to persist a new draw.
type DrawCreate struct {
	ID       uuid.UUID
	Name     string
	DrawDate time.Time
	Open     bool
}

// DrawUpdate represents the editable draw fields; nil fields are left untouched.
type DrawUpdate struct {
	Name     *string
	DrawDate *time.Time
	Open     *bool
}

// DrawRead is a read-optimized view of a draw.
type DrawRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DrawDate  time.Time `json:"draw_date"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

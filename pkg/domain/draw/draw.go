// Package draw holds the lottery draw grouping entity. Draws are not part of
// the money-transfer engines; tickets may optionally belong to one.
package draw

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Draw represents one lottery round.
type Draw struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DrawDate  time.Time `json:"draw_date"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an open draw.
func New(name string, drawDate time.Time) (*Draw, error) {
	if name == "" {
		return nil, errors.New("draw name cannot be empty")
	}
	now := time.Now().UTC()
	return &Draw{
		ID:        uuid.New(),
		Name:      name,
		DrawDate:  drawDate,
		Open:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

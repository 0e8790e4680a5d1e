// Package draw defines the draw repository contract.
package draw

import (
	"context"

	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/dto"
)

// Repository defines the data access operations for lottery draws.
type Repository interface {
	Create(ctx context.Context, create *dto.DrawCreate) error
	Update(ctx context.Context, id uuid.UUID, update *dto.DrawUpdate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.DrawRead, error)
	List(ctx context.Context, opts dto.ListOptions) ([]*dto.DrawRead, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

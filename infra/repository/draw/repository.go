package draw

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lottohq/lottery/pkg/dto"
	drawrepo "github.com/lottohq/lottery/pkg/repository/draw"
)

type repository struct {
	db *gorm.DB
}

// New returns a draw repository bound to the given session.
func New(db *gorm.DB) drawrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.DrawCreate) error {
	draw := &LotteryDraw{
		ID:       create.ID,
		Name:     create.Name,
		DrawDate: create.DrawDate,
		Open:     create.Open,
	}
	return r.db.WithContext(ctx).Create(draw).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, du *dto.DrawUpdate) error {
	updates := make(map[string]any)

	if du.Name != nil {
		updates["name"] = *du.Name
	}
	if du.DrawDate != nil {
		updates["draw_date"] = *du.DrawDate
	}
	if du.Open != nil {
		updates["open"] = *du.Open
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&LotteryDraw{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.DrawRead, error) {
	var draw LotteryDraw
	if err := r.db.WithContext(ctx).First(&draw, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&draw), nil
}

func (r *repository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.DrawRead, error) {
	query := r.db.WithContext(ctx).Order("draw_date desc")
	if opts.Limit > 0 {
		query = query.Offset(opts.Offset()).Limit(opts.Limit)
	}

	var draws []LotteryDraw
	if err := query.Find(&draws).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.DrawRead, 0, len(draws))
	for i := range draws {
		result = append(result, mapModelToDTO(&draws[i]))
	}
	return result, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LotteryDraw{}).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&LotteryDraw{}, "id = ?", id).Error
}

func mapModelToDTO(draw *LotteryDraw) *dto.DrawRead {
	return &dto.DrawRead{
		ID:        draw.ID,
		Name:      draw.Name,
		DrawDate:  draw.DrawDate,
		Open:      draw.Open,
		CreatedAt: draw.CreatedAt,
		UpdatedAt: draw.UpdatedAt,
	}
}

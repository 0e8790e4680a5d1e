package prize

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	prizerepo "github.com/lottohq/lottery/pkg/repository/prize"
)

var sortableColumns = map[string]bool{
	"prize_amount": true,
	"status":       true,
	"created_at":   true,
}

type repository struct {
	db *gorm.DB
}

// New returns a prize repository bound to the given session.
func New(db *gorm.DB) prizerepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.PrizeCreate) error {
	return r.db.WithContext(ctx).Create(modelFromCreate(create)).Error
}

func (r *repository) CreateMany(ctx context.Context, creates []*dto.PrizeCreate) (int, error) {
	if len(creates) == 0 {
		return 0, nil
	}
	prizes := make([]*Prize, 0, len(creates))
	for _, c := range creates {
		prizes = append(prizes, modelFromCreate(c))
	}
	result := r.db.WithContext(ctx).Create(&prizes)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, pu *dto.PrizeUpdate) error {
	updates := make(map[string]any)

	if pu.PrizeDescription != nil {
		updates["prize_description"] = *pu.PrizeDescription
	}
	if pu.PrizeAmount != nil {
		updates["prize_amount"] = int64(*pu.PrizeAmount)
	}
	if pu.WinningTicketID != nil {
		updates["winning_ticket_id"] = *pu.WinningTicketID
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&Prize{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.PrizeRead, error) {
	var prize Prize
	if err := r.db.WithContext(ctx).First(&prize, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&prize), nil
}

func (r *repository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*dto.PrizeRead, error) {
	var prize Prize
	if err := r.db.WithContext(ctx).Where("winning_ticket_id = ?", ticketID).First(&prize).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&prize), nil
}

func (r *repository) ListByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) ([]*dto.PrizeRead, error) {
	if len(ticketIDs) == 0 {
		return nil, nil
	}
	var prizes []Prize
	if err := r.db.WithContext(ctx).
		Where("winning_ticket_id IN ?", ticketIDs).
		Find(&prizes).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(prizes), nil
}

func (r *repository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.PrizeRead, error) {
	query := r.db.WithContext(ctx)
	if opts.SortBy != "" && sortableColumns[opts.SortBy] {
		direction := "asc"
		if opts.SortDesc {
			direction = "desc"
		}
		query = query.Order(fmt.Sprintf("%s %s", opts.SortBy, direction))
	}
	if opts.Limit > 0 {
		query = query.Offset(opts.Offset()).Limit(opts.Limit)
	}

	var prizes []Prize
	if err := query.Find(&prizes).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(prizes), nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Prize{}).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Prize{}, "id = ?", id).Error
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&Prize{}).Error
}

func (r *repository) WinningTicketTaken(
	ctx context.Context,
	ticketID uuid.UUID,
	excludeID *uuid.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Prize{}).
		Where("winning_ticket_id = ?", ticketID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkClaimed re-validates "unclaimed" inside the UPDATE itself; a duplicate
// claim affects zero rows and surfaces ErrPrizeAlreadyClaimed instead of
// paying twice.
func (r *repository) MarkClaimed(ctx context.Context, prizeID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Prize{}).
		Where("id = ? AND status = ?", prizeID, "unclaimed").
		Update("status", "claimed")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPrizeAlreadyClaimed
	}
	return nil
}

func modelFromCreate(create *dto.PrizeCreate) *Prize {
	return &Prize{
		ID:               create.ID,
		PrizeDescription: create.PrizeDescription,
		PrizeAmount:      int64(create.PrizeAmount),
		WinningTicketID:  create.WinningTicketID,
		Status:           create.Status,
	}
}

func mapModelsToDTOs(prizes []Prize) []*dto.PrizeRead {
	result := make([]*dto.PrizeRead, 0, len(prizes))
	for i := range prizes {
		result = append(result, mapModelToDTO(&prizes[i]))
	}
	return result
}

func mapModelToDTO(prize *Prize) *dto.PrizeRead {
	return &dto.PrizeRead{
		ID:               prize.ID,
		PrizeDescription: prize.PrizeDescription,
		PrizeAmount:      money.Amount(prize.PrizeAmount),
		WinningTicketID:  prize.WinningTicketID,
		Status:           prize.Status,
		CreatedAt:        prize.CreatedAt,
		UpdatedAt:        prize.UpdatedAt,
	}
}

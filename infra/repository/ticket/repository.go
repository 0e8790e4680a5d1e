package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	ticketrepo "github.com/lottohq/lottery/pkg/repository/ticket"
)

// sortableColumns whitelists the columns listing queries may sort by.
var sortableColumns = map[string]bool{
	"ticket_number": true,
	"price":         true,
	"created_at":    true,
}

type repository struct {
	db *gorm.DB
}

// New returns a ticket repository bound to the given session.
func New(db *gorm.DB) ticketrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.TicketCreate) error {
	ticket := &LotteryTicket{
		ID:           create.ID,
		TicketNumber: create.TicketNumber,
		Price:        int64(create.Price),
		DrawID:       create.DrawID,
	}
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, tu *dto.TicketUpdate) error {
	updates := make(map[string]any)

	if tu.TicketNumber != nil {
		updates["ticket_number"] = *tu.TicketNumber
	}
	if tu.Price != nil {
		updates["price"] = int64(*tu.Price)
	}
	if tu.DrawID != nil {
		updates["draw_id"] = *tu.DrawID
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&LotteryTicket{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.TicketRead, error) {
	var ticket LotteryTicket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&ticket), nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*dto.TicketRead, error) {
	var ticket LotteryTicket
	if err := r.db.WithContext(ctx).Where("ticket_number = ?", number).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&ticket), nil
}

func (r *repository) List(
	ctx context.Context,
	filter dto.TicketFilter,
	opts dto.ListOptions,
) ([]*dto.TicketRead, error) {
	query := r.applyFilter(r.db.WithContext(ctx), filter)
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

	var tickets []LotteryTicket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.TicketRead, 0, len(tickets))
	for i := range tickets {
		result = append(result, mapModelToDTO(&tickets[i]))
	}
	return result, nil
}

func (r *repository) Count(ctx context.Context, filter dto.TicketFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&LotteryTicket{}), filter).
		Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&LotteryTicket{}, "id = ?", id).Error
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&LotteryTicket{}).Error
}

// ClaimOwnership re-validates "unsold" inside the UPDATE itself; of two
// concurrent purchasers exactly one affects a row, the other sees
// ErrTicketAlreadySold.
func (r *repository) ClaimOwnership(ctx context.Context, ticketID, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&LotteryTicket{}).
		Where("id = ? AND owner_id IS NULL", ticketID).
		Update("owner_id", ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTicketAlreadySold
	}
	return nil
}

func (r *repository) applyFilter(query *gorm.DB, filter dto.TicketFilter) *gorm.DB {
	if filter.NumberContains != "" {
		query = query.Where("ticket_number LIKE ?", "%"+filter.NumberContains+"%")
	}
	if filter.NumberSuffix != "" {
		query = query.Where("ticket_number LIKE ?", "%"+filter.NumberSuffix)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	return query
}

func mapModelToDTO(ticket *LotteryTicket) *dto.TicketRead {
	return &dto.TicketRead{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Price:        money.Amount(ticket.Price),
		OwnerID:      ticket.OwnerID,
		DrawID:       ticket.DrawID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

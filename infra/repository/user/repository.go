package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	userrepo "github.com/lottohq/lottery/pkg/repository/user"
)

type repository struct {
	db *gorm.DB
}

// New returns a user repository bound to the given session.
func New(db *gorm.DB) userrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.UserCreate) error {
	user := &User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Phone:    create.Phone,
		Password: create.Password,
		Role:     create.Role,
		Money:    int64(create.Money),
		Status:   create.Status,
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, uu *dto.UserUpdate) error {
	updates := make(map[string]any)

	if uu.Username != nil {
		updates["username"] = *uu.Username
	}
	if uu.Email != nil {
		updates["email"] = *uu.Email
	}
	if uu.Phone != nil {
		updates["phone"] = *uu.Phone
	}
	if uu.Password != nil {
		updates["password"] = *uu.Password
	}
	if uu.Role != nil {
		updates["role"] = *uu.Role
	}
	if uu.Money != nil {
		updates["money"] = int64(*uu.Money)
	}
	if uu.Status != nil {
		updates["status"] = *uu.Status
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) FieldsTaken(
	ctx context.Context,
	username, email, phone string,
	excludeID *uuid.UUID,
) (taken dto.UserFieldsTaken, err error) {
	var conds *gorm.DB
	tx := r.db.WithContext(ctx)
	if username != "" {
		conds = tx.Where("username = ?", username)
	}
	if email != "" {
		if conds == nil {
			conds = tx.Where("email = ?", email)
		} else {
			conds = conds.Or("email = ?", email)
		}
	}
	if phone != "" {
		if conds == nil {
			conds = tx.Where("phone = ?", phone)
		} else {
			conds = conds.Or("phone = ?", phone)
		}
	}
	if conds == nil {
		return taken, nil
	}

	query := tx.Model(&User{}).Where(conds)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var users []User
	if err = query.Find(&users).Error; err != nil {
		return taken, err
	}
	for _, u := range users {
		if username != "" && u.Username == username {
			taken.UsernameTaken = true
		}
		if email != "" && u.Email == email {
			taken.EmailTaken = true
		}
		if phone != "" && u.Phone == phone {
			taken.PhoneTaken = true
		}
	}
	return taken, nil
}

func (r *repository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(ctx).
		Offset(opts.Offset()).Limit(opts.Limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&User{}).Error
}

// Debit re-validates the balance precondition inside the UPDATE itself; a
// racing debit that drained the balance makes this affect zero rows.
func (r *repository) Debit(ctx context.Context, id uuid.UUID, amount money.Amount) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND money >= ?", id, int64(amount)).
		Update("money", gorm.Expr("money - ?", int64(amount)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *repository) Credit(ctx context.Context, id uuid.UUID, amount money.Amount) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("money", gorm.Expr("money + ?", int64(amount)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func mapModelToDTO(user *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Phone:          user.Phone,
		HashedPassword: user.Password,
		Role:           user.Role,
		Money:          money.Amount(user.Money),
		Status:         user.Status,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

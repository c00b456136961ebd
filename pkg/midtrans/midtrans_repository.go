package midtrans

import (
	"context"

	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/reward"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MidtransRepository interface {
		// WithTx runs fn with a repository bound to a single database
		// transaction; any error rolls back everything fn wrote.
		WithTx(ctx context.Context, fn func(MidtransRepository) error) error

		CreateTopUpOrder(ctx context.Context, order *entities.TopUpOrder) error
		GetTopUpOrderByOrderID(ctx context.Context, orderID string) (*entities.TopUpOrder, error)
		UpdateTopUpOrder(ctx context.Context, order *entities.TopUpOrder) error

		// reward.Ledger, so settlement credits run inside this
		// repository's transaction.
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error
		CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error
	}

	midtransRepository struct {
		db *gorm.DB
	}
)

func NewMidtransRepository(db *gorm.DB) MidtransRepository {
	return &midtransRepository{db: db}
}

func (r *midtransRepository) WithTx(ctx context.Context, fn func(MidtransRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&midtransRepository{db: tx})
	})
}

func (r *midtransRepository) CreateTopUpOrder(ctx context.Context, order *entities.TopUpOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *midtransRepository) GetTopUpOrderByOrderID(ctx context.Context, orderID string) (*entities.TopUpOrder, error) {
	var order entities.TopUpOrder
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *midtransRepository) UpdateTopUpOrder(ctx context.Context, order *entities.TopUpOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *midtransRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := reward.LockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *midtransRepository) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("point_balance", balance).Error
}

func (r *midtransRepository) CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

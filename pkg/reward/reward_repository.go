package reward

import (
	"context"

	"TestBridge-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardRepository interface {
		Ledger

		// WithTx runs fn with a repository bound to a single database
		// transaction; any error rolls back everything fn wrote.
		WithTx(ctx context.Context, fn func(RewardRepository) error) error

		GetUserRewardHistory(ctx context.Context, userID string, page, limit int) ([]*entities.RewardHistory, int64, error)
		CreateWithdrawal(ctx context.Context, withdrawal *entities.WithdrawalRequest) error
		GetWithdrawalByID(ctx context.Context, id string) (*entities.WithdrawalRequest, error)
		UpdateWithdrawal(ctx context.Context, withdrawal *entities.WithdrawalRequest) error
		GetUserWithdrawals(ctx context.Context, userID string) ([]*entities.WithdrawalRequest, error)
	}

	rewardRepository struct {
		db *gorm.DB
	}
)

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) WithTx(ctx context.Context, fn func(RewardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rewardRepository{db: tx})
	})
}

func (r *rewardRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := LockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *rewardRepository) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("point_balance", balance).Error
}

func (r *rewardRepository) CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *rewardRepository) GetUserRewardHistory(ctx context.Context, userID string, page, limit int) ([]*entities.RewardHistory, int64, error) {
	var histories []*entities.RewardHistory
	var count int64

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.RewardHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&histories).Error; err != nil {
		return nil, 0, err
	}

	return histories, count, nil
}

func (r *rewardRepository) CreateWithdrawal(ctx context.Context, withdrawal *entities.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

func (r *rewardRepository) GetWithdrawalByID(ctx context.Context, id string) (*entities.WithdrawalRequest, error) {
	var withdrawal entities.WithdrawalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&withdrawal).Error; err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func (r *rewardRepository) UpdateWithdrawal(ctx context.Context, withdrawal *entities.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Save(withdrawal).Error
}

func (r *rewardRepository) GetUserWithdrawals(ctx context.Context, userID string) ([]*entities.WithdrawalRequest, error) {
	var withdrawals []*entities.WithdrawalRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

package reward

import (
	"context"
	"errors"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the minimal store surface the payout primitive needs. It is
// satisfied by any repository bound to the transaction in which the balance
// change must land. GetUserByID must lock the user row for the rest of the
// transaction (LockForUpdate), so two concurrent debits cannot both read
// the same balance and both pass the overdraft check.
type Ledger interface {
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
	UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error
	CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error
}

// LockForUpdate adds SELECT ... FOR UPDATE on stores that support it.
// SQLite has no row locks; its writers already serialize on a
// database-level write lock.
func LockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// Apply is the single balance-mutation primitive. Every credit and debit in
// the system goes through here: it reads the current balance, rejects debits
// that would go negative before writing anything, appends the history row
// with the post-operation balance snapshot, and then updates the stored
// balance to that same value.
func Apply(ctx context.Context, ledger Ledger, userID uuid.UUID, appID *uuid.UUID, rewardType string, amount int, description string) (*entities.RewardHistory, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidRewardAmount
	}

	user, err := ledger.GetUserByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var newBalance int
	switch {
	case domain.CreditRewardTypes[rewardType]:
		newBalance = user.PointBalance + amount
	case domain.DebitRewardTypes[rewardType]:
		if user.PointBalance < amount {
			return nil, domain.ErrInsufficientBalance
		}
		newBalance = user.PointBalance - amount
	default:
		return nil, domain.ErrInvalidRewardType
	}

	history := &entities.RewardHistory{
		ID:          uuid.New(),
		UserID:      userID,
		AppID:       appID,
		Type:        rewardType,
		Amount:      amount,
		Balance:     newBalance,
		Description: description,
	}

	if err := ledger.CreateRewardHistory(ctx, history); err != nil {
		return nil, err
	}

	if err := ledger.UpdateUserBalance(ctx, userID, newBalance); err != nil {
		return nil, err
	}

	return history, nil
}

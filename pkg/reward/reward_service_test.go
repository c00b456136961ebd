package reward

import (
	"context"
	"fmt"
	"testing"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.App{},
		&entities.RewardHistory{},
		&entities.WithdrawalRequest{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, balance int) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:           uuid.New(),
		Name:         "tester",
		Email:        fmt.Sprintf("tester-%s@example.com", uuid.New().String()[:8]),
		Role:         domain.RoleUser,
		PointBalance: balance,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPayoutCredit(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 0)

	resp, err := service.Payout(ctx, domain.PayoutRequest{
		UserID:      user.ID.String(),
		Amount:      5000,
		Type:        domain.RewardTypeEarned,
		Description: "test completion reward",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RewardTypeEarned, resp.Type)
	assert.Equal(t, 5000, resp.Amount)
	assert.Equal(t, 5000, resp.Balance)

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 5000, got.PointBalance)
}

func TestPayoutDebit(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 3000)

	resp, err := service.Payout(ctx, domain.PayoutRequest{
		UserID: user.ID.String(),
		Amount: 1000,
		Type:   domain.RewardTypeExchanged,
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, resp.Balance)

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 2000, got.PointBalance)
}

func TestPayoutInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 500)

	_, err := service.Payout(ctx, domain.PayoutRequest{
		UserID: user.ID.String(),
		Amount: 501,
		Type:   domain.RewardTypeWithdrawn,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// a rejected debit leaves nothing behind
	var count int64
	require.NoError(t, db.Model(&entities.RewardHistory{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 500, got.PointBalance)
}

func TestPayoutValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 100)

	_, err := service.Payout(ctx, domain.PayoutRequest{
		UserID: user.ID.String(),
		Amount: 100,
		Type:   "BONUS",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRewardType)

	_, err = service.Payout(ctx, domain.PayoutRequest{
		UserID: user.ID.String(),
		Amount: 0,
		Type:   domain.RewardTypeEarned,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRewardAmount)

	_, err = service.Payout(ctx, domain.PayoutRequest{
		UserID: uuid.New().String(),
		Amount: 100,
		Type:   domain.RewardTypeEarned,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLedgerReplay(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 0)

	steps := []struct {
		rewardType string
		amount     int
	}{
		{domain.RewardTypeEarned, 5000},
		{domain.RewardTypeEarned, 2500},
		{domain.RewardTypeWithdrawn, 3000},
		{domain.RewardTypeWithdrawalRefund, 3000},
		{domain.RewardTypeExchanged, 1500},
	}
	for _, step := range steps {
		_, err := service.Payout(ctx, domain.PayoutRequest{
			UserID: user.ID.String(),
			Amount: step.amount,
			Type:   step.rewardType,
		})
		require.NoError(t, err)
	}

	var history []*entities.RewardHistory
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("created_at").Find(&history).Error)
	require.Len(t, history, len(steps))

	// replaying the entries reproduces every balance snapshot
	running := 0
	for i, entry := range history {
		if domain.CreditRewardTypes[entry.Type] {
			running += entry.Amount
		} else {
			running -= entry.Amount
		}
		assert.Equal(t, running, entry.Balance, "snapshot mismatch at entry %d", i)
	}

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, running, got.PointBalance)
	assert.Equal(t, 6000, got.PointBalance)
}

func TestWithdrawalLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 10000)

	resp, err := service.RequestWithdrawal(ctx, domain.RequestWithdrawalRequest{
		Amount:        4000,
		BankName:      "KB Bank",
		AccountNumber: "110-234-567890",
	}, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalPending, resp.Status)

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 6000, got.PointBalance)

	t.Run("cancel refunds the debit", func(t *testing.T) {
		cancelled, err := service.CancelWithdrawal(ctx, resp.ID, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, domain.WithdrawalCancelled, cancelled.Status)

		require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
		assert.Equal(t, 10000, got.PointBalance)

		var refunds int64
		require.NoError(t, db.Model(&entities.RewardHistory{}).
			Where("user_id = ? AND type = ?", user.ID, domain.RewardTypeWithdrawalRefund).
			Count(&refunds).Error)
		assert.EqualValues(t, 1, refunds)
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		_, err := service.CancelWithdrawal(ctx, resp.ID, user.ID.String())
		assert.ErrorIs(t, err, domain.ErrWithdrawalNotPending)
	})
}

func TestWithdrawalGuards(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 1000)
	stranger := createUser(t, db, 0)

	t.Run("insufficient balance creates nothing", func(t *testing.T) {
		_, err := service.RequestWithdrawal(ctx, domain.RequestWithdrawalRequest{
			Amount:        2000,
			BankName:      "KB Bank",
			AccountNumber: "110-234-567890",
		}, user.ID.String())
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		var count int64
		require.NoError(t, db.Model(&entities.WithdrawalRequest{}).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	resp, err := service.RequestWithdrawal(ctx, domain.RequestWithdrawalRequest{
		Amount:        1000,
		BankName:      "KB Bank",
		AccountNumber: "110-234-567890",
	}, user.ID.String())
	require.NoError(t, err)

	t.Run("only the owner may cancel", func(t *testing.T) {
		_, err := service.CancelWithdrawal(ctx, resp.ID, stranger.ID.String())
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})

	t.Run("complete flips the status once", func(t *testing.T) {
		completed, err := service.CompleteWithdrawal(ctx, resp.ID, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, domain.WithdrawalCompleted, completed.Status)

		_, err = service.CompleteWithdrawal(ctx, resp.ID, user.ID.String())
		assert.ErrorIs(t, err, domain.ErrWithdrawalNotPending)
	})

	t.Run("unknown withdrawal", func(t *testing.T) {
		_, err := service.CancelWithdrawal(ctx, uuid.New().String(), user.ID.String())
		assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)
	})
}

func TestGetRewardHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewRewardService(NewRewardRepository(db))
	ctx := context.Background()

	user := createUser(t, db, 0)
	for i := 0; i < 3; i++ {
		_, err := service.Payout(ctx, domain.PayoutRequest{
			UserID: user.ID.String(),
			Amount: 100 * (i + 1),
			Type:   domain.RewardTypeEarned,
		})
		require.NoError(t, err)
	}

	history, count, err := service.GetRewardHistory(ctx, user.ID.String(), 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Len(t, history, 2)
}

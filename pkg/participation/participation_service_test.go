package participation

import (
	"context"
	"fmt"
	"testing"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/notification"

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
	// a single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.App{},
		&entities.Participation{},
		&entities.Notification{},
	))

	return db
}

func newTestService(db *gorm.DB) ParticipationService {
	notificationService := notification.NewNotificationService(notification.NewNotificationRepository(db))
	return NewParticipationService(NewParticipationRepository(db), notificationService)
}

func createUser(t *testing.T, db *gorm.DB, name string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:    uuid.New(),
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]),
		Role:  domain.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createApp(t *testing.T, db *gorm.DB, developer *entities.User, targetTesters int) *entities.App {
	t.Helper()
	rewardAmount := 5000
	app := &entities.App{
		ID:            uuid.New(),
		DeveloperID:   developer.ID,
		Name:          "Test App",
		Description:   "an app under test",
		TestType:      domain.TestTypePaidReward,
		RewardAmount:  &rewardAmount,
		TargetTesters: targetTesters,
		Status:        domain.AppStatusRecruiting,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func createParticipation(t *testing.T, db *gorm.DB, app *entities.App, tester *entities.User) *entities.Participation {
	t.Helper()
	participation := &entities.Participation{
		ID:           uuid.New(),
		AppID:        app.ID,
		TesterID:     tester.ID,
		Status:       domain.ParticipationActive,
		RewardStatus: domain.RewardStatusNone,
	}
	require.NoError(t, db.Create(participation).Error)
	return participation
}

func TestJoinApp(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, 2)

	resp, err := service.JoinApp(ctx, app.ID.String(), tester.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipationActive, resp.Status)
	assert.Equal(t, domain.RewardStatusNone, resp.RewardStatus)

	t.Run("duplicate join is rejected", func(t *testing.T) {
		_, err := service.JoinApp(ctx, app.ID.String(), tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrAlreadyParticipating)
	})

	t.Run("developer cannot join own app", func(t *testing.T) {
		_, err := service.JoinApp(ctx, app.ID.String(), developer.ID.String())
		assert.ErrorIs(t, err, domain.ErrOwnAppParticipation)
	})

	t.Run("full app rejects new testers", func(t *testing.T) {
		second := createUser(t, db, "tester2")
		_, err := service.JoinApp(ctx, app.ID.String(), second.ID.String())
		require.NoError(t, err)

		third := createUser(t, db, "tester3")
		_, err = service.JoinApp(ctx, app.ID.String(), third.ID.String())
		assert.ErrorIs(t, err, domain.ErrAppFull)
	})

	t.Run("unknown app", func(t *testing.T) {
		_, err := service.JoinApp(ctx, uuid.New().String(), tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrAppNotFound)
	})
}

func TestUpdateStatusComplete(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	other := createUser(t, db, "other")
	app := createApp(t, db, developer, 2)
	participation := createParticipation(t, db, app, tester)
	createParticipation(t, db, app, other)

	resp, err := service.UpdateStatus(ctx, participation.ID.String(),
		domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
		tester.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipationCompleted, resp.Status)
	assert.Equal(t, domain.RewardStatusPendingFeedback, resp.RewardStatus)
	assert.NotNil(t, resp.CompletedAt)

	// one of two testers done, app stays as-is
	var got entities.App
	require.NoError(t, db.First(&got, "id = ?", app.ID).Error)
	assert.Equal(t, domain.AppStatusRecruiting, got.Status)
}

func TestUpdateStatusCompletesApp(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	app := createApp(t, db, developer, 2)

	testerA := createUser(t, db, "testerA")
	testerB := createUser(t, db, "testerB")
	pA := createParticipation(t, db, app, testerA)
	pB := createParticipation(t, db, app, testerB)

	_, err := service.UpdateStatus(ctx, pA.ID.String(),
		domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
		testerA.ID.String())
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, pB.ID.String(),
		domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
		testerB.ID.String())
	require.NoError(t, err)

	var got entities.App
	require.NoError(t, db.First(&got, "id = ?", app.ID).Error)
	assert.Equal(t, domain.AppStatusCompleted, got.Status)

	// developer got notified for each completion
	var count int64
	require.NoError(t, db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", developer.ID, domain.NotificationTestCompleted).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateStatusDrop(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, 3)

	t.Run("drop requires a reason", func(t *testing.T) {
		p := createParticipation(t, db, app, tester)
		_, err := service.UpdateStatus(ctx, p.ID.String(),
			domain.UpdateParticipationStatusRequest{Status: domain.ParticipationDropped},
			tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrDropReasonRequired)
	})

	t.Run("drop reason length is capped", func(t *testing.T) {
		p := createParticipation(t, db, createApp(t, db, developer, 1), tester)
		long := make([]byte, domain.MaxDropReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := service.UpdateStatus(ctx, p.ID.String(),
			domain.UpdateParticipationStatusRequest{
				Status:     domain.ParticipationDropped,
				DropReason: string(long),
			},
			tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrDropReasonTooLong)
	})

	t.Run("developer may drop a tester", func(t *testing.T) {
		p := createParticipation(t, db, createApp(t, db, developer, 1), tester)
		resp, err := service.UpdateStatus(ctx, p.ID.String(),
			domain.UpdateParticipationStatusRequest{
				Status:     domain.ParticipationDropped,
				DropReason: "inactive for two weeks",
			},
			developer.ID.String())
		require.NoError(t, err)
		assert.Equal(t, domain.ParticipationDropped, resp.Status)
		assert.Equal(t, "inactive for two weeks", resp.DropReason)
		assert.NotNil(t, resp.DroppedAt)
		// drops never complete the app
		var got entities.App
		require.NoError(t, db.First(&got, "id = ?", p.AppID).Error)
		assert.Equal(t, domain.AppStatusRecruiting, got.Status)
	})
}

func TestUpdateStatusGuards(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	stranger := createUser(t, db, "stranger")
	app := createApp(t, db, developer, 3)
	participation := createParticipation(t, db, app, tester)

	t.Run("unknown participation", func(t *testing.T) {
		_, err := service.UpdateStatus(ctx, uuid.New().String(),
			domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
			tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrParticipationNotFound)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := service.UpdateStatus(ctx, participation.ID.String(),
			domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
			stranger.ID.String())
		assert.ErrorIs(t, err, domain.ErrNotParticipationOwner)
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		_, err := service.UpdateStatus(ctx, participation.ID.String(),
			domain.UpdateParticipationStatusRequest{Status: domain.ParticipationCompleted},
			tester.ID.String())
		require.NoError(t, err)

		_, err = service.UpdateStatus(ctx, participation.ID.String(),
			domain.UpdateParticipationStatusRequest{
				Status:     domain.ParticipationDropped,
				DropReason: "changed my mind",
			},
			tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrParticipationNotActive)
	})
}

// The duplicate-join guard is backstopped by a unique (app_id, tester_id)
// index, so a second join that raced past the existence check still cannot
// commit.
func TestStorageRejectsDuplicateParticipation(t *testing.T) {
	db := setupTestDB(t)

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, 3)
	createParticipation(t, db, app, tester)

	err := db.Create(&entities.Participation{
		ID:           uuid.New(),
		AppID:        app.ID,
		TesterID:     tester.ID,
		Status:       domain.ParticipationActive,
		RewardStatus: domain.RewardStatusNone,
	}).Error
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.Participation{}).
		Where("app_id = ? AND tester_id = ?", app.ID, tester.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetAppParticipations(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, 3)
	createParticipation(t, db, app, tester)

	participations, count, err := service.GetAppParticipations(ctx, app.ID.String(), developer.ID.String(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, participations, 1)

	_, _, err = service.GetAppParticipations(ctx, app.ID.String(), tester.ID.String(), 1, 20)
	assert.ErrorIs(t, err, domain.ErrNotAppOwner)
}

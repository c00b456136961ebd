package feedback

import (
	"context"
	"fmt"
	"testing"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/internal/utils/storage"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.App{},
		&entities.Participation{},
		&entities.Feedback{},
		&entities.FeedbackRating{},
		&entities.BugReport{},
		&entities.BugReportImage{},
		&entities.RewardHistory{},
		&entities.Notification{},
	))

	return db
}

func newTestService(db *gorm.DB) FeedbackService {
	notificationService := notification.NewNotificationService(notification.NewNotificationRepository(db))
	return NewFeedbackService(NewFeedbackRepository(db), notificationService, storage.AwsS3{})
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

func createApp(t *testing.T, db *gorm.DB, developer *entities.User, testType string, rewardAmount *int) *entities.App {
	t.Helper()
	app := &entities.App{
		ID:            uuid.New(),
		DeveloperID:   developer.ID,
		Name:          "Test App",
		Description:   "an app under test",
		TestType:      testType,
		RewardAmount:  rewardAmount,
		TargetTesters: 10,
		Status:        domain.AppStatusRecruiting,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func createCompletedParticipation(t *testing.T, db *gorm.DB, app *entities.App, tester *entities.User) *entities.Participation {
	t.Helper()
	participation := &entities.Participation{
		ID:           uuid.New(),
		AppID:        app.ID,
		TesterID:     tester.ID,
		Status:       domain.ParticipationCompleted,
		RewardStatus: domain.RewardStatusPendingFeedback,
	}
	require.NoError(t, db.Create(participation).Error)
	return participation
}

func createFeedback(t *testing.T, db *gorm.DB, participation *entities.Participation) *entities.Feedback {
	t.Helper()
	feedback := &entities.Feedback{
		ID:              uuid.New(),
		ParticipationID: participation.ID,
		AppID:           participation.AppID,
		TesterID:        participation.TesterID,
		OverallRating:   4,
	}
	require.NoError(t, db.Create(feedback).Error)
	return feedback
}

func intPtr(v int) *int { return &v }

func TestSubmitFeedbackPaidReward(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, domain.TestTypePaidReward, intPtr(5000))
	participation := createCompletedParticipation(t, db, app, tester)

	resp, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
		ParticipationID: participation.ID.String(),
		OverallRating:   5,
		Comment:         "smooth onboarding, crashed once on upload",
	}, tester.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RewardStatusPaid, resp.RewardStatus)

	var gotTester entities.User
	require.NoError(t, db.First(&gotTester, "id = ?", tester.ID).Error)
	assert.Equal(t, 5000, gotTester.PointBalance)

	var entry entities.RewardHistory
	require.NoError(t, db.First(&entry, "user_id = ?", tester.ID).Error)
	assert.Equal(t, domain.RewardTypeEarned, entry.Type)
	assert.Equal(t, 5000, entry.Amount)
	assert.Equal(t, 5000, entry.Balance)

	var gotParticipation entities.Participation
	require.NoError(t, db.First(&gotParticipation, "id = ?", participation.ID).Error)
	assert.Equal(t, domain.RewardStatusPaid, gotParticipation.RewardStatus)

	// developer hears about the feedback, tester about the payout
	var notified int64
	require.NoError(t, db.Model(&entities.Notification{}).Count(&notified).Error)
	assert.EqualValues(t, 2, notified)
}

func TestSubmitFeedbackCreditExchange(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, domain.TestTypeCreditExchange, nil)
	participation := createCompletedParticipation(t, db, app, tester)

	resp, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
		ParticipationID: participation.ID.String(),
		OverallRating:   3,
	}, tester.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RewardStatusSkipped, resp.RewardStatus)

	var entries int64
	require.NoError(t, db.Model(&entities.RewardHistory{}).Count(&entries).Error)
	assert.EqualValues(t, 0, entries)

	var gotTester entities.User
	require.NoError(t, db.First(&gotTester, "id = ?", tester.ID).Error)
	assert.Equal(t, 0, gotTester.PointBalance)
}

func TestSubmitFeedbackPreconditions(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	stranger := createUser(t, db, "stranger")
	app := createApp(t, db, developer, domain.TestTypePaidReward, intPtr(5000))
	participation := createCompletedParticipation(t, db, app, tester)

	t.Run("missing participation wins over bad rating", func(t *testing.T) {
		_, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: uuid.New().String(),
			OverallRating:   99,
		}, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrParticipationNotFound)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: participation.ID.String(),
			OverallRating:   6,
		}, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidOverallRating)
	})

	t.Run("only the tester may submit", func(t *testing.T) {
		_, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: participation.ID.String(),
			OverallRating:   4,
		}, stranger.ID.String())
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})

	t.Run("active participation is too early", func(t *testing.T) {
		active := &entities.Participation{
			ID:           uuid.New(),
			AppID:        app.ID,
			TesterID:     stranger.ID,
			Status:       domain.ParticipationActive,
			RewardStatus: domain.RewardStatusNone,
		}
		require.NoError(t, db.Create(active).Error)

		_, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: active.ID.String(),
			OverallRating:   4,
		}, stranger.ID.String())
		assert.ErrorIs(t, err, domain.ErrFeedbackNotCompleted)
	})

	t.Run("second submission conflicts and pays nothing", func(t *testing.T) {
		_, err := service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: participation.ID.String(),
			OverallRating:   5,
		}, tester.ID.String())
		require.NoError(t, err)

		_, err = service.SubmitFeedback(ctx, domain.SubmitFeedbackRequest{
			ParticipationID: participation.ID.String(),
			OverallRating:   1,
		}, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrFeedbackAlreadyExists)

		var gotTester entities.User
		require.NoError(t, db.First(&gotTester, "id = ?", tester.ID).Error)
		assert.Equal(t, 5000, gotTester.PointBalance)
	})
}

func TestSubmitRatings(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, domain.TestTypeCreditExchange, nil)
	participation := createCompletedParticipation(t, db, app, tester)
	feedback := createFeedback(t, db, participation)

	resp, err := service.SubmitRatings(ctx, feedback.ID.String(), domain.SubmitRatingsRequest{
		Ratings: []domain.RatingItem{
			{ItemType: domain.RatingItemUIUX, Score: 4},
			{ItemType: domain.RatingItemPerformance, Score: 4},
			{ItemType: domain.RatingItemStability, Score: 5},
		},
	}, tester.ID.String())
	require.NoError(t, err)

	assert.Len(t, resp.Ratings, 3)
	assert.InDelta(t, 4.33, resp.Average, 0.001)

	var stored int64
	require.NoError(t, db.Model(&entities.FeedbackRating{}).
		Where("feedback_id = ?", feedback.ID).Count(&stored).Error)
	assert.EqualValues(t, 3, stored)

	t.Run("second batch conflicts", func(t *testing.T) {
		_, err := service.SubmitRatings(ctx, feedback.ID.String(), domain.SubmitRatingsRequest{
			Ratings: []domain.RatingItem{{ItemType: domain.RatingItemUIUX, Score: 1}},
		}, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrRatingsAlreadyExist)
	})
}

func TestSubmitRatingsValidation(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	stranger := createUser(t, db, "stranger")
	app := createApp(t, db, developer, domain.TestTypeCreditExchange, nil)
	participation := createCompletedParticipation(t, db, app, tester)
	feedback := createFeedback(t, db, participation)

	cases := []struct {
		name    string
		ratings []domain.RatingItem
		caller  string
		wantErr error
	}{
		{
			name:    "empty batch",
			ratings: nil,
			caller:  tester.ID.String(),
			wantErr: domain.ErrEmptyRatings,
		},
		{
			name:    "unknown item type",
			ratings: []domain.RatingItem{{ItemType: "BATTERY", Score: 3}},
			caller:  tester.ID.String(),
			wantErr: domain.ErrInvalidRatingItemType,
		},
		{
			name:    "score out of range",
			ratings: []domain.RatingItem{{ItemType: domain.RatingItemUIUX, Score: 0}},
			caller:  tester.ID.String(),
			wantErr: domain.ErrInvalidRatingScore,
		},
		{
			name: "duplicate item type",
			ratings: []domain.RatingItem{
				{ItemType: domain.RatingItemUIUX, Score: 3},
				{ItemType: domain.RatingItemUIUX, Score: 4},
			},
			caller:  tester.ID.String(),
			wantErr: domain.ErrDuplicateRatingItem,
		},
		{
			name:    "not the feedback owner",
			ratings: []domain.RatingItem{{ItemType: domain.RatingItemUIUX, Score: 3}},
			caller:  stranger.ID.String(),
			wantErr: domain.ErrNotFeedbackOwner,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SubmitRatings(ctx, feedback.ID.String(),
				domain.SubmitRatingsRequest{Ratings: tc.ratings}, tc.caller)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// a rejected batch writes nothing
	var stored int64
	require.NoError(t, db.Model(&entities.FeedbackRating{}).Count(&stored).Error)
	assert.EqualValues(t, 0, stored)

	t.Run("unknown feedback", func(t *testing.T) {
		_, err := service.SubmitRatings(ctx, uuid.New().String(),
			domain.SubmitRatingsRequest{
				Ratings: []domain.RatingItem{{ItemType: domain.RatingItemUIUX, Score: 3}},
			}, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrFeedbackNotFound)
	})
}

func TestRatingAverage(t *testing.T) {
	assert.Equal(t, 0.0, ratingAverage(nil))

	ratings := []*entities.FeedbackRating{
		{Score: 4}, {Score: 4}, {Score: 5},
	}
	assert.Equal(t, 4.33, ratingAverage(ratings))

	assert.Equal(t, 3.5, ratingAverage([]*entities.FeedbackRating{{Score: 3}, {Score: 4}}))
}

func TestCreateBugReport(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	stranger := createUser(t, db, "stranger")
	app := createApp(t, db, developer, domain.TestTypeCreditExchange, nil)
	participation := createCompletedParticipation(t, db, app, tester)
	feedback := createFeedback(t, db, participation)

	req := domain.CreateBugReportRequest{
		Title:       "Crash on image upload",
		Description: "App crashes when uploading a photo larger than 10MB",
		DeviceInfo:  "Galaxy S24, Android 14",
	}

	resp, err := service.CreateBugReport(ctx, feedback.ID.String(), req, tester.ID.String())
	require.NoError(t, err)
	assert.Equal(t, req.Title, resp.Title)
	assert.Empty(t, resp.ImageURLs)

	t.Run("one bug report per feedback", func(t *testing.T) {
		_, err := service.CreateBugReport(ctx, feedback.ID.String(), req, tester.ID.String())
		assert.ErrorIs(t, err, domain.ErrBugReportAlreadyExists)
	})

	t.Run("tester and developer may read, others may not", func(t *testing.T) {
		got, err := service.GetBugReport(ctx, feedback.ID.String(), tester.ID.String())
		require.NoError(t, err)
		assert.Equal(t, resp.ID, got.ID)

		_, err = service.GetBugReport(ctx, feedback.ID.String(), developer.ID.String())
		require.NoError(t, err)

		_, err = service.GetBugReport(ctx, feedback.ID.String(), stranger.ID.String())
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})
}

// The duplicate guards in the service are backstopped by unique indexes, so
// a second writer that raced past the existence check still cannot commit.
func TestStorageRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, domain.TestTypePaidReward, intPtr(5000))
	participation := createCompletedParticipation(t, db, app, tester)
	feedback := createFeedback(t, db, participation)

	t.Run("one feedback per participation", func(t *testing.T) {
		err := db.Create(&entities.Feedback{
			ID:              uuid.New(),
			ParticipationID: participation.ID,
			AppID:           app.ID,
			TesterID:        tester.ID,
			OverallRating:   2,
		}).Error
		assert.Error(t, err)

		var count int64
		require.NoError(t, db.Model(&entities.Feedback{}).
			Where("participation_id = ?", participation.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("one rating per item type", func(t *testing.T) {
		require.NoError(t, db.Create(&entities.FeedbackRating{
			ID:         uuid.New(),
			FeedbackID: feedback.ID,
			ItemType:   domain.RatingItemUIUX,
			Score:      4,
		}).Error)

		err := db.Create(&entities.FeedbackRating{
			ID:         uuid.New(),
			FeedbackID: feedback.ID,
			ItemType:   domain.RatingItemUIUX,
			Score:      5,
		}).Error
		assert.Error(t, err)
	})

	t.Run("one bug report per feedback", func(t *testing.T) {
		require.NoError(t, db.Create(&entities.BugReport{
			ID:          uuid.New(),
			FeedbackID:  feedback.ID,
			Title:       "first",
			Description: "first report",
		}).Error)

		err := db.Create(&entities.BugReport{
			ID:          uuid.New(),
			FeedbackID:  feedback.ID,
			Title:       "second",
			Description: "raced past the existence check",
		}).Error
		assert.Error(t, err)
	})
}

func TestGetAppFeedbacks(t *testing.T) {
	db := setupTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	developer := createUser(t, db, "dev")
	tester := createUser(t, db, "tester")
	app := createApp(t, db, developer, domain.TestTypeCreditExchange, nil)
	participation := createCompletedParticipation(t, db, app, tester)
	createFeedback(t, db, participation)

	feedbacks, count, err := service.GetAppFeedbacks(ctx, app.ID.String(), developer.ID.String(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, feedbacks, 1)

	_, _, err = service.GetAppFeedbacks(ctx, app.ID.String(), tester.ID.String(), 1, 20)
	assert.ErrorIs(t, err, domain.ErrNotAppOwner)
}

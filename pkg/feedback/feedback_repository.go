package feedback

import (
	"context"

	"TestBridge-Backend/entities"
	"TestBridge-Backend/pkg/reward"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FeedbackRepository interface {
		// WithTx runs fn with a repository bound to a single database
		// transaction; any error rolls back everything fn wrote. The
		// feedback flow writes across four tables (feedback, reward
		// history, user balance, participation) and must land atomically.
		WithTx(ctx context.Context, fn func(FeedbackRepository) error) error

		CreateFeedback(ctx context.Context, feedback *entities.Feedback) error
		GetFeedbackByID(ctx context.Context, id string) (*entities.Feedback, error)
		HasFeedbackForParticipation(ctx context.Context, participationID string) (bool, error)
		GetAppFeedbacks(ctx context.Context, appID string, page, limit int) ([]*entities.Feedback, int64, error)
		GetUserFeedbacks(ctx context.Context, userID string, page, limit int) ([]*entities.Feedback, int64, error)

		CreateRatings(ctx context.Context, ratings []*entities.FeedbackRating) error
		HasRatings(ctx context.Context, feedbackID string) (bool, error)

		CreateBugReport(ctx context.Context, bugReport *entities.BugReport) error
		CreateBugReportImages(ctx context.Context, images []*entities.BugReportImage) error
		HasBugReport(ctx context.Context, feedbackID string) (bool, error)
		GetBugReportByFeedback(ctx context.Context, feedbackID string) (*entities.BugReport, error)

		GetParticipationByID(ctx context.Context, id string) (*entities.Participation, error)
		UpdateParticipationReward(ctx context.Context, participationID uuid.UUID, rewardStatus string) error
		GetAppByID(ctx context.Context, id string) (*entities.App, error)

		// reward.Ledger, so the payout primitive can run inside this
		// repository's transaction.
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error
		CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error
	}

	feedbackRepository struct {
		db *gorm.DB
	}
)

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) WithTx(ctx context.Context, fn func(FeedbackRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&feedbackRepository{db: tx})
	})
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback *entities.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (*entities.Feedback, error) {
	var feedback entities.Feedback
	if err := r.db.WithContext(ctx).
		Preload("App").
		Preload("Ratings").
		Where("id = ?", id).
		First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) HasFeedbackForParticipation(ctx context.Context, participationID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Feedback{}).
		Where("participation_id = ?", participationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackRepository) GetAppFeedbacks(ctx context.Context, appID string, page, limit int) ([]*entities.Feedback, int64, error) {
	var feedbacks []*entities.Feedback
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("app_id = ?", appID)

	if err := query.Model(&entities.Feedback{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Tester").
		Preload("Ratings").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedbacks).Error; err != nil {
		return nil, 0, err
	}

	return feedbacks, count, nil
}

func (r *feedbackRepository) GetUserFeedbacks(ctx context.Context, userID string, page, limit int) ([]*entities.Feedback, int64, error) {
	var feedbacks []*entities.Feedback
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("tester_id = ?", userID)

	if err := query.Model(&entities.Feedback{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Ratings").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedbacks).Error; err != nil {
		return nil, 0, err
	}

	return feedbacks, count, nil
}

func (r *feedbackRepository) CreateRatings(ctx context.Context, ratings []*entities.FeedbackRating) error {
	return r.db.WithContext(ctx).Create(&ratings).Error
}

func (r *feedbackRepository) HasRatings(ctx context.Context, feedbackID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.FeedbackRating{}).
		Where("feedback_id = ?", feedbackID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackRepository) CreateBugReport(ctx context.Context, bugReport *entities.BugReport) error {
	return r.db.WithContext(ctx).Create(bugReport).Error
}

func (r *feedbackRepository) CreateBugReportImages(ctx context.Context, images []*entities.BugReportImage) error {
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *feedbackRepository) HasBugReport(ctx context.Context, feedbackID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.BugReport{}).
		Where("feedback_id = ?", feedbackID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackRepository) GetBugReportByFeedback(ctx context.Context, feedbackID string) (*entities.BugReport, error) {
	var bugReport entities.BugReport
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("feedback_id = ?", feedbackID).
		First(&bugReport).Error; err != nil {
		return nil, err
	}
	return &bugReport, nil
}

// GetParticipationByID locks the participation row until the transaction
// ends; the unique index on Feedback.ParticipationID backstops the
// duplicate-feedback check either way.
func (r *feedbackRepository) GetParticipationByID(ctx context.Context, id string) (*entities.Participation, error) {
	var participation entities.Participation
	if err := reward.LockForUpdate(r.db.WithContext(ctx)).
		Preload("App").
		Where("id = ?", id).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

func (r *feedbackRepository) UpdateParticipationReward(ctx context.Context, participationID uuid.UUID, rewardStatus string) error {
	return r.db.WithContext(ctx).Model(&entities.Participation{}).
		Where("id = ?", participationID).
		Update("reward_status", rewardStatus).Error
}

func (r *feedbackRepository) GetAppByID(ctx context.Context, id string) (*entities.App, error) {
	var app entities.App
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *feedbackRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := reward.LockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *feedbackRepository) UpdateUserBalance(ctx context.Context, userID uuid.UUID, balance int) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("point_balance", balance).Error
}

func (r *feedbackRepository) CreateRewardHistory(ctx context.Context, history *entities.RewardHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"
	"TestBridge-Backend/internal/utils/storage"
	"TestBridge-Backend/pkg/notification"
	"TestBridge-Backend/pkg/reward"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FeedbackService interface {
		SubmitFeedback(ctx context.Context, req domain.SubmitFeedbackRequest, userID string) (*domain.FeedbackResponse, error)
		SubmitRatings(ctx context.Context, feedbackID string, req domain.SubmitRatingsRequest, userID string) (*domain.SubmitRatingsResponse, error)
		CreateBugReport(ctx context.Context, feedbackID string, req domain.CreateBugReportRequest, userID string) (*domain.BugReportResponse, error)
		GetBugReport(ctx context.Context, feedbackID string, userID string) (*domain.BugReportResponse, error)
		GetAppFeedbacks(ctx context.Context, appID string, userID string, page, limit int) ([]*domain.FeedbackResponse, int64, error)
		GetMyFeedbacks(ctx context.Context, userID string, page, limit int) ([]*domain.FeedbackResponse, int64, error)
	}

	feedbackService struct {
		feedbackRepository  FeedbackRepository
		notificationService notification.NotificationService
		s3                  storage.AwsS3
	}
)

func NewFeedbackService(
	feedbackRepository FeedbackRepository,
	notificationService notification.NotificationService,
	s3 storage.AwsS3,
) FeedbackService {
	return &feedbackService{
		feedbackRepository:  feedbackRepository,
		notificationService: notificationService,
		s3:                  s3,
	}
}

// SubmitFeedback creates the feedback and, when the app pays a reward,
// applies the payout in the same transaction. Feedback row, ledger entry,
// balance update and reward status always commit or roll back together.
func (s *feedbackService) SubmitFeedback(ctx context.Context, req domain.SubmitFeedbackRequest, userID string) (*domain.FeedbackResponse, error) {
	var feedback *entities.Feedback
	var app *entities.App
	var paidAmount int

	err := s.feedbackRepository.WithTx(ctx, func(repo FeedbackRepository) error {
		participation, err := repo.GetParticipationByID(ctx, req.ParticipationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrParticipationNotFound
			}
			return err
		}

		if req.OverallRating < 1 || req.OverallRating > 5 {
			return domain.ErrInvalidOverallRating
		}

		if participation.TesterID.String() != userID {
			return domain.ErrUserNotAllowed
		}

		if participation.Status != domain.ParticipationCompleted {
			return domain.ErrFeedbackNotCompleted
		}

		exists, err := repo.HasFeedbackForParticipation(ctx, req.ParticipationID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrFeedbackAlreadyExists
		}

		app = participation.App
		if app == nil {
			return domain.ErrAppNotFound
		}

		feedback = &entities.Feedback{
			ID:              uuid.New(),
			ParticipationID: participation.ID,
			AppID:           participation.AppID,
			TesterID:        participation.TesterID,
			OverallRating:   req.OverallRating,
			Comment:         req.Comment,
		}
		if err := repo.CreateFeedback(ctx, feedback); err != nil {
			return err
		}

		eligible := app.TestType == domain.TestTypePaidReward &&
			app.RewardAmount != nil && *app.RewardAmount > 0

		if eligible {
			description := fmt.Sprintf("Reward for testing %s", app.Name)
			if _, err := reward.Apply(ctx, repo, participation.TesterID, &participation.AppID,
				domain.RewardTypeEarned, *app.RewardAmount, description); err != nil {
				return err
			}
			paidAmount = *app.RewardAmount
			return repo.UpdateParticipationReward(ctx, participation.ID, domain.RewardStatusPaid)
		}

		return repo.UpdateParticipationReward(ctx, participation.ID, domain.RewardStatusSkipped)
	})
	if err != nil {
		return nil, err
	}

	feedbackID := feedback.ID
	s.notificationService.Notify(ctx, app.DeveloperID,
		domain.NotificationFeedbackReceived, "Feedback received",
		fmt.Sprintf("A tester submitted feedback for %s", app.Name), &feedbackID)

	if paidAmount > 0 {
		s.notificationService.Notify(ctx, feedback.TesterID,
			domain.NotificationRewardPaid, "Reward paid",
			fmt.Sprintf("You earned %d points for testing %s", paidAmount, app.Name), &feedbackID)
	}

	resp := toFeedbackResponse(feedback)
	if paidAmount > 0 {
		resp.RewardStatus = domain.RewardStatusPaid
	} else {
		resp.RewardStatus = domain.RewardStatusSkipped
	}
	return resp, nil
}

func (s *feedbackService) SubmitRatings(ctx context.Context, feedbackID string, req domain.SubmitRatingsRequest, userID string) (*domain.SubmitRatingsResponse, error) {
	if len(req.Ratings) == 0 {
		return nil, domain.ErrEmptyRatings
	}

	seen := make(map[string]bool, len(req.Ratings))
	for _, item := range req.Ratings {
		if !validRatingItemType(item.ItemType) {
			return nil, domain.ErrInvalidRatingItemType
		}
		if item.Score < 1 || item.Score > 5 {
			return nil, domain.ErrInvalidRatingScore
		}
		if seen[item.ItemType] {
			return nil, domain.ErrDuplicateRatingItem
		}
		seen[item.ItemType] = true
	}

	var ratings []*entities.FeedbackRating
	err := s.feedbackRepository.WithTx(ctx, func(repo FeedbackRepository) error {
		feedback, err := repo.GetFeedbackByID(ctx, feedbackID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFeedbackNotFound
			}
			return err
		}

		if feedback.TesterID.String() != userID {
			return domain.ErrNotFeedbackOwner
		}

		exists, err := repo.HasRatings(ctx, feedbackID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrRatingsAlreadyExist
		}

		ratings = make([]*entities.FeedbackRating, 0, len(req.Ratings))
		for _, item := range req.Ratings {
			ratings = append(ratings, &entities.FeedbackRating{
				ID:         uuid.New(),
				FeedbackID: feedback.ID,
				ItemType:   item.ItemType,
				Score:      item.Score,
			})
		}

		// One batched insert, so a failure leaves no partial rating set.
		return repo.CreateRatings(ctx, ratings)
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.SubmitRatingsResponse{
		Ratings: make([]domain.RatingResponse, 0, len(ratings)),
		Average: ratingAverage(ratings),
	}
	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, domain.RatingResponse{
			ID:       r.ID.String(),
			ItemType: r.ItemType,
			Score:    r.Score,
		})
	}
	return resp, nil
}

func (s *feedbackService) CreateBugReport(ctx context.Context, feedbackID string, req domain.CreateBugReportRequest, userID string) (*domain.BugReportResponse, error) {
	var bugReport *entities.BugReport
	var imageURLs []string

	err := s.feedbackRepository.WithTx(ctx, func(repo FeedbackRepository) error {
		feedback, err := repo.GetFeedbackByID(ctx, feedbackID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFeedbackNotFound
			}
			return err
		}

		if feedback.TesterID.String() != userID {
			return domain.ErrNotFeedbackOwner
		}

		exists, err := repo.HasBugReport(ctx, feedbackID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrBugReportAlreadyExists
		}

		bugReport = &entities.BugReport{
			ID:          uuid.New(),
			FeedbackID:  feedback.ID,
			Title:       req.Title,
			Description: req.Description,
			DeviceInfo:  req.DeviceInfo,
		}
		if err := repo.CreateBugReport(ctx, bugReport); err != nil {
			return err
		}

		if len(req.Images) == 0 {
			return nil
		}

		images := make([]*entities.BugReportImage, 0, len(req.Images))
		for i, file := range req.Images {
			objectKey, err := s.s3.UploadFile(
				fmt.Sprintf("bug-%s-%d", bugReport.ID.String(), i),
				file,
				"bug-reports",
				storage.AllowImage...,
			)
			if err != nil {
				return err
			}
			imageURL := s.s3.GetPublicLinkKey(objectKey)
			imageURLs = append(imageURLs, imageURL)
			images = append(images, &entities.BugReportImage{
				ID:          uuid.New(),
				BugReportID: bugReport.ID,
				ImageURL:    imageURL,
				SortOrder:   i,
			})
		}

		return repo.CreateBugReportImages(ctx, images)
	})
	if err != nil {
		return nil, err
	}

	resp := toBugReportResponse(bugReport)
	resp.ImageURLs = imageURLs
	return resp, nil
}

func (s *feedbackService) GetBugReport(ctx context.Context, feedbackID string, userID string) (*domain.BugReportResponse, error) {
	feedback, err := s.feedbackRepository.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, err
	}

	if !canReadFeedback(feedback, userID) {
		return nil, domain.ErrUserNotAllowed
	}

	bugReport, err := s.feedbackRepository.GetBugReportByFeedback(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, err
	}

	resp := toBugReportResponse(bugReport)
	for _, img := range bugReport.Images {
		resp.ImageURLs = append(resp.ImageURLs, img.ImageURL)
	}
	return resp, nil
}

func (s *feedbackService) GetAppFeedbacks(ctx context.Context, appID string, userID string, page, limit int) ([]*domain.FeedbackResponse, int64, error) {
	app, err := s.feedbackRepository.GetAppByID(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrAppNotFound
		}
		return nil, 0, err
	}

	if app.DeveloperID.String() != userID {
		return nil, 0, domain.ErrNotAppOwner
	}

	feedbacks, count, err := s.feedbackRepository.GetAppFeedbacks(ctx, appID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toFeedbackResponses(feedbacks), count, nil
}

func (s *feedbackService) GetMyFeedbacks(ctx context.Context, userID string, page, limit int) ([]*domain.FeedbackResponse, int64, error) {
	feedbacks, count, err := s.feedbackRepository.GetUserFeedbacks(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toFeedbackResponses(feedbacks), count, nil
}

// ratingAverage is round(sum/count*100)/100, 0 for an empty set.
func ratingAverage(ratings []*entities.FeedbackRating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return math.Round(float64(sum)/float64(len(ratings))*100) / 100
}

func validRatingItemType(itemType string) bool {
	for _, t := range domain.RatingItemTypes {
		if t == itemType {
			return true
		}
	}
	return false
}

func canReadFeedback(feedback *entities.Feedback, userID string) bool {
	if feedback.TesterID.String() == userID {
		return true
	}
	return feedback.App != nil && feedback.App.DeveloperID.String() == userID
}

func toFeedbackResponse(f *entities.Feedback) *domain.FeedbackResponse {
	resp := &domain.FeedbackResponse{
		ID:              f.ID.String(),
		ParticipationID: f.ParticipationID.String(),
		AppID:           f.AppID.String(),
		TesterID:        f.TesterID.String(),
		OverallRating:   f.OverallRating,
		Comment:         f.Comment,
		CreatedAt:       f.CreatedAt,
	}
	if f.Tester != nil {
		resp.TesterName = f.Tester.Name
	}
	return resp
}

func toFeedbackResponses(feedbacks []*entities.Feedback) []*domain.FeedbackResponse {
	result := make([]*domain.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		result = append(result, toFeedbackResponse(f))
	}
	return result
}

func toBugReportResponse(b *entities.BugReport) *domain.BugReportResponse {
	return &domain.BugReportResponse{
		ID:          b.ID.String(),
		FeedbackID:  b.FeedbackID.String(),
		Title:       b.Title,
		Description: b.Description,
		DeviceInfo:  b.DeviceInfo,
		CreatedAt:   b.CreatedAt,
	}
}

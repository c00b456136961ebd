package notification

import (
	"context"
	"errors"
	"log"

	"TestBridge-Backend/domain"
	"TestBridge-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	NotificationService interface {
		// Notify writes a notification for userID. Failures are logged
		// and swallowed so side-effect notifications never abort the
		// business operation that produced them.
		Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, relatedID *uuid.UUID)

		GetNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error)
		MarkRead(ctx context.Context, id string, userID string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{notificationRepository: notificationRepository}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, relatedID *uuid.UUID) {
	notification := &entities.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}

	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to create %s notification for user %s: %v", notifType, userID, err)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp := &domain.NotificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if n.RelatedID != nil {
			resp.RelatedID = n.RelatedID.String()
		}
		result = append(result, resp)
	}

	return result, count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string, userID string) error {
	notification, err := s.notificationRepository.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}

	if notification.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.notificationRepository.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

package domain

import (
	"errors"
	"time"
)

const (
	NotificationTestCompleted    = "TEST_COMPLETED"
	NotificationTestDropped      = "TEST_DROPPED"
	NotificationFeedbackReceived = "FEEDBACK_RECEIVED"
	NotificationRewardPaid       = "REWARD_PAID"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageSuccessMarkAllRead      = "all notifications marked as read"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID string    `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"errors"
	"time"
)

const (
	ParticipationActive    = "ACTIVE"
	ParticipationCompleted = "COMPLETED"
	ParticipationDropped   = "DROPPED"

	RewardStatusNone            = "NONE"
	RewardStatusPendingFeedback = "PENDING_FEEDBACK"
	RewardStatusPaid            = "PAID"
	RewardStatusSkipped         = "SKIPPED"

	MaxDropReasonLength = 100
)

var (
	MessageSuccessJoinApp           = "joined test campaign successfully"
	MessageSuccessUpdateStatus      = "participation status updated successfully"
	MessageSuccessGetParticipations = "participations retrieved successfully"

	MessageFailedJoinApp           = "failed to join test campaign"
	MessageFailedUpdateStatus      = "failed to update participation status"
	MessageFailedGetParticipations = "failed to retrieve participations"

	ErrParticipationNotFound  = errors.New("participation not found")
	ErrNotParticipationOwner  = errors.New("caller is neither the tester nor the app developer")
	ErrParticipationNotActive = errors.New("participation is not ACTIVE")
	ErrInvalidTargetStatus    = errors.New("target status must be COMPLETED or DROPPED")
	ErrDropReasonRequired     = errors.New("drop reason is required when dropping")
	ErrDropReasonTooLong      = errors.New("drop reason must be at most 100 characters")
	ErrAlreadyParticipating   = errors.New("already participating in this app")
	ErrAppFull                = errors.New("app already reached its target tester count")
	ErrOwnAppParticipation    = errors.New("developers cannot test their own app")
)

type (
	UpdateParticipationStatusRequest struct {
		Status     string `json:"status" validate:"required,oneof=COMPLETED DROPPED"`
		DropReason string `json:"drop_reason" validate:"omitempty,max=100"`
	}

	ParticipationResponse struct {
		ID           string     `json:"id"`
		AppID        string     `json:"app_id"`
		AppName      string     `json:"app_name,omitempty"`
		TesterID     string     `json:"tester_id"`
		TesterName   string     `json:"tester_name,omitempty"`
		Status       string     `json:"status"`
		RewardStatus string     `json:"reward_status"`
		DropReason   string     `json:"drop_reason,omitempty"`
		CompletedAt  *time.Time `json:"completed_at,omitempty"`
		DroppedAt    *time.Time `json:"dropped_at,omitempty"`
		CreatedAt    time.Time  `json:"created_at"`
	}
)

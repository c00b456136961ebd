package domain

import (
	"errors"
	"time"
)

const (
	TestTypePaidReward     = "PAID_REWARD"
	TestTypeCreditExchange = "CREDIT_EXCHANGE"

	AppStatusRecruiting = "RECRUITING"
	AppStatusInProgress = "IN_PROGRESS"
	AppStatusCompleted  = "COMPLETED"
	AppStatusClosed     = "CLOSED"
)

var (
	MessageSuccessCreateApp = "app registered successfully"
	MessageSuccessGetApps   = "apps retrieved successfully"
	MessageSuccessGetApp    = "app retrieved successfully"
	MessageSuccessUpdateApp = "app updated successfully"

	MessageFailedCreateApp = "failed to register app"
	MessageFailedGetApps   = "failed to retrieve apps"
	MessageFailedGetApp    = "failed to retrieve app"
	MessageFailedUpdateApp = "failed to update app"

	ErrAppNotFound        = errors.New("app not found")
	ErrNotAppOwner        = errors.New("caller is not the app developer")
	ErrAppNotRecruiting   = errors.New("app is not recruiting testers")
	ErrRewardAmountNeeded = errors.New("paid reward app requires a reward amount")
)

type (
	CreateAppRequest struct {
		Name          string `json:"name" validate:"required,max=100"`
		Description   string `json:"description" validate:"required"`
		StoreURL      string `json:"store_url" validate:"omitempty,url"`
		TestType      string `json:"test_type" validate:"required,oneof=PAID_REWARD CREDIT_EXCHANGE"`
		RewardAmount  *int   `json:"reward_amount" validate:"omitempty,min=0"`
		TargetTesters int    `json:"target_testers" validate:"required,min=1"`
	}

	UpdateAppRequest struct {
		Name        string `json:"name" validate:"omitempty,max=100"`
		Description string `json:"description" validate:"omitempty"`
		StoreURL    string `json:"store_url" validate:"omitempty,url"`
		Status      string `json:"status" validate:"omitempty,oneof=RECRUITING IN_PROGRESS COMPLETED CLOSED"`
	}

	AppResponse struct {
		ID            string    `json:"id"`
		DeveloperID   string    `json:"developer_id"`
		DeveloperName string    `json:"developer_name,omitempty"`
		Name          string    `json:"name"`
		Description   string    `json:"description"`
		StoreURL      string    `json:"store_url,omitempty"`
		IconURL       string    `json:"icon_url,omitempty"`
		TestType      string    `json:"test_type"`
		RewardAmount  *int      `json:"reward_amount,omitempty"`
		TargetTesters int       `json:"target_testers"`
		TesterCount   int64     `json:"tester_count"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"created_at"`
	}
)

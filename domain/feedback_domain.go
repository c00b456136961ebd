package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	RatingItemUIUX          = "UI_UX"
	RatingItemPerformance   = "PERFORMANCE"
	RatingItemFunctionality = "FUNCTIONALITY"
	RatingItemStability     = "STABILITY"
)

// RatingItemTypes is the fixed set of itemized rating categories.
var RatingItemTypes = []string{
	RatingItemUIUX,
	RatingItemPerformance,
	RatingItemFunctionality,
	RatingItemStability,
}

var (
	MessageSuccessSubmitFeedback  = "feedback submitted successfully"
	MessageSuccessSubmitRatings   = "ratings submitted successfully"
	MessageSuccessCreateBugReport = "bug report submitted successfully"
	MessageSuccessGetFeedbacks    = "feedbacks retrieved successfully"
	MessageSuccessGetBugReports   = "bug reports retrieved successfully"

	MessageFailedSubmitFeedback  = "failed to submit feedback"
	MessageFailedSubmitRatings   = "failed to submit ratings"
	MessageFailedCreateBugReport = "failed to submit bug report"
	MessageFailedGetFeedbacks    = "failed to retrieve feedbacks"
	MessageFailedGetBugReports   = "failed to retrieve bug reports"

	ErrFeedbackNotFound       = errors.New("feedback not found")
	ErrInvalidOverallRating   = errors.New("overall rating must be between 1 and 5")
	ErrNotFeedbackOwner       = errors.New("caller is not the feedback owner")
	ErrFeedbackNotCompleted   = errors.New("feedback is only allowed after completing the test")
	ErrFeedbackAlreadyExists  = errors.New("feedback already submitted for this participation")
	ErrRatingsAlreadyExist    = errors.New("ratings already submitted for this feedback")
	ErrEmptyRatings           = errors.New("ratings must not be empty")
	ErrInvalidRatingItemType  = errors.New("invalid rating item type")
	ErrInvalidRatingScore     = errors.New("rating score must be between 1 and 5")
	ErrDuplicateRatingItem    = errors.New("duplicate rating item type in batch")
	ErrBugReportAlreadyExists = errors.New("bug report already submitted for this feedback")
)

type (
	SubmitFeedbackRequest struct {
		ParticipationID string `json:"participation_id" validate:"required,uuid4"`
		// range-checked in the service so precondition ordering holds
		OverallRating int    `json:"overall_rating"`
		Comment       string `json:"comment" validate:"omitempty,max=2000"`
	}

	RatingItem struct {
		ItemType string `json:"item_type" validate:"required,oneof=UI_UX PERFORMANCE FUNCTIONALITY STABILITY"`
		Score    int    `json:"score" validate:"required,min=1,max=5"`
	}

	SubmitRatingsRequest struct {
		Ratings []RatingItem `json:"ratings" validate:"required,min=1,dive"`
	}

	SubmitRatingsResponse struct {
		Ratings []RatingResponse `json:"ratings"`
		Average float64          `json:"average"`
	}

	RatingResponse struct {
		ID       string `json:"id"`
		ItemType string `json:"item_type"`
		Score    int    `json:"score"`
	}

	CreateBugReportRequest struct {
		Title       string                  `json:"title" form:"title" validate:"required,max=100"`
		Description string                  `json:"description" form:"description" validate:"required"`
		DeviceInfo  string                  `json:"device_info" form:"device_info" validate:"omitempty,max=200"`
		Images      []*multipart.FileHeader `json:"-" form:"-"`
	}

	BugReportResponse struct {
		ID          string    `json:"id"`
		FeedbackID  string    `json:"feedback_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		DeviceInfo  string    `json:"device_info,omitempty"`
		ImageURLs   []string  `json:"image_urls,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	FeedbackResponse struct {
		ID              string    `json:"id"`
		ParticipationID string    `json:"participation_id"`
		AppID           string    `json:"app_id"`
		TesterID        string    `json:"tester_id"`
		TesterName      string    `json:"tester_name,omitempty"`
		OverallRating   int       `json:"overall_rating"`
		Comment         string    `json:"comment,omitempty"`
		RewardStatus    string    `json:"reward_status,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}
)

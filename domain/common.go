package domain

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
)

const (
	RoleUser = "user"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// StatusCode maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is an internal failure; the presenter keeps its detail out
// of the response body at 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUserNotAllowed),
		errors.Is(err, ErrNotParticipationOwner),
		errors.Is(err, ErrNotFeedbackOwner),
		errors.Is(err, ErrNotAppOwner):
		return fiber.StatusForbidden
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAppNotFound),
		errors.Is(err, ErrParticipationNotFound),
		errors.Is(err, ErrFeedbackNotFound),
		errors.Is(err, ErrWithdrawalNotFound),
		errors.Is(err, ErrTopUpOrderNotFound),
		errors.Is(err, ErrNotificationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrFeedbackAlreadyExists),
		errors.Is(err, ErrRatingsAlreadyExist),
		errors.Is(err, ErrBugReportAlreadyExists),
		errors.Is(err, ErrAlreadyParticipating),
		errors.Is(err, ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenNotFound), errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrParseUUID),
		errors.Is(err, ErrParticipationNotActive),
		errors.Is(err, ErrInvalidTargetStatus),
		errors.Is(err, ErrDropReasonRequired),
		errors.Is(err, ErrDropReasonTooLong),
		errors.Is(err, ErrAppFull),
		errors.Is(err, ErrOwnAppParticipation),
		errors.Is(err, ErrAppNotRecruiting),
		errors.Is(err, ErrRewardAmountNeeded),
		errors.Is(err, ErrInvalidOverallRating),
		errors.Is(err, ErrFeedbackNotCompleted),
		errors.Is(err, ErrEmptyRatings),
		errors.Is(err, ErrInvalidRatingItemType),
		errors.Is(err, ErrInvalidRatingScore),
		errors.Is(err, ErrDuplicateRatingItem),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInvalidRewardType),
		errors.Is(err, ErrInvalidRewardAmount),
		errors.Is(err, ErrWithdrawalNotPending),
		errors.Is(err, ErrPaymentFailed),
		errors.Is(err, ErrEmailNotVerified):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

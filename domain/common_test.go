package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden", ErrNotAppOwner, fiber.StatusForbidden},
		{"not found", ErrParticipationNotFound, fiber.StatusNotFound},
		{"conflict", ErrFeedbackAlreadyExists, fiber.StatusConflict},
		{"unauthorized", ErrTokenExpired, fiber.StatusUnauthorized},
		{"bad request", ErrInsufficientBalance, fiber.StatusBadRequest},
		{"bad request wrapped", fmt.Errorf("payout: %w", ErrInvalidRewardType), fiber.StatusBadRequest},
		{"unrecognized store error", errors.New("pq: password authentication failed for user"), fiber.StatusInternalServerError},
		{"wrapped gorm error", fmt.Errorf("query: %w", errors.New("driver: bad connection")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

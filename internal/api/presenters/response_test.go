package presenters

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusBadRequest, "invalid input", errors.New("amount must be a positive integer"))
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusInternalServerError, "something went wrong", errors.New("pq: password authentication failed for user"))
	})

	t.Run("client errors carry the detail", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/bad", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)

		var resp Response
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "amount must be a positive integer", resp.Error)
	})

	t.Run("internal errors keep the detail out of the body", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/internal", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "password")

		var resp Response
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "something went wrong", resp.Message)
		assert.Empty(t, resp.Error)
	})
}

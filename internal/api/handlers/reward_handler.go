package handlers

import (
	"TestBridge-Backend/domain"
	"TestBridge-Backend/internal/api/presenters"
	"TestBridge-Backend/pkg/reward"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RewardHandler interface {
		Payout(c *fiber.Ctx) error
		GetRewardHistory(c *fiber.Ctx) error
		RequestWithdrawal(c *fiber.Ctx) error
		CancelWithdrawal(c *fiber.Ctx) error
		CompleteWithdrawal(c *fiber.Ctx) error
		GetWithdrawals(c *fiber.Ctx) error
	}

	rewardHandler struct {
		rewardService reward.RewardService
		validator     *validator.Validate
	}
)

func NewRewardHandler(rewardService reward.RewardService, validator *validator.Validate) RewardHandler {
	return &rewardHandler{
		rewardService: rewardService,
		validator:     validator,
	}
}

func (h *rewardHandler) Payout(c *fiber.Ctx) error {
	req := new(domain.PayoutRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPayout, err)
	}

	resp, err := h.rewardService.Payout(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedPayout, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessPayout)
}

func (h *rewardHandler) GetRewardHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	histories, count, err := h.rewardService.GetRewardHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetRewardHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"rewards":    histories,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRewardHistory)
}

func (h *rewardHandler) RequestWithdrawal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RequestWithdrawalRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestWithdrawal, err)
	}

	resp, err := h.rewardService.RequestWithdrawal(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedRequestWithdrawal, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessRequestWithdrawal)
}

func (h *rewardHandler) CancelWithdrawal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp, err := h.rewardService.CancelWithdrawal(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedCancelWithdrawal, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCancelWithdrawal)
}

func (h *rewardHandler) CompleteWithdrawal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp, err := h.rewardService.CompleteWithdrawal(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedCancelWithdrawal, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCancelWithdrawal)
}

func (h *rewardHandler) GetWithdrawals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	withdrawals, err := h.rewardService.GetWithdrawals(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetRewardHistory, err)
	}

	return presenters.SuccessResponse(c, withdrawals, fiber.StatusOK, domain.MessageSuccessGetRewardHistory)
}

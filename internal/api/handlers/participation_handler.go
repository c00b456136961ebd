package handlers

import (
	"TestBridge-Backend/domain"
	"TestBridge-Backend/internal/api/presenters"
	"TestBridge-Backend/pkg/participation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ParticipationHandler interface {
		JoinApp(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
		GetAppParticipations(c *fiber.Ctx) error
		GetMyParticipations(c *fiber.Ctx) error
	}

	participationHandler struct {
		participationService participation.ParticipationService
		validator            *validator.Validate
	}
)

func NewParticipationHandler(participationService participation.ParticipationService, validator *validator.Validate) ParticipationHandler {
	return &participationHandler{
		participationService: participationService,
		validator:            validator,
	}
}

func (h *participationHandler) JoinApp(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp, err := h.participationService.JoinApp(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedJoinApp, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessJoinApp)
}

func (h *participationHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateParticipationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	resp, err := h.participationService.UpdateStatus(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *participationHandler) GetAppParticipations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	participations, count, err := h.participationService.GetAppParticipations(c.Context(), c.Params("id"), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetParticipations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"participations": participations,
		"pagination":     paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetParticipations)
}

func (h *participationHandler) GetMyParticipations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	participations, count, err := h.participationService.GetMyParticipations(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetParticipations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"participations": participations,
		"pagination":     paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetParticipations)
}

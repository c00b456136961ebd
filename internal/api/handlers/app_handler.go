package handlers

import (
	"TestBridge-Backend/domain"
	"TestBridge-Backend/internal/api/presenters"
	"TestBridge-Backend/pkg/app"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AppHandler interface {
		CreateApp(c *fiber.Ctx) error
		GetApps(c *fiber.Ctx) error
		GetApp(c *fiber.Ctx) error
		GetMyApps(c *fiber.Ctx) error
		UpdateApp(c *fiber.Ctx) error
	}

	appHandler struct {
		appService app.AppService
		validator  *validator.Validate
	}
)

func NewAppHandler(appService app.AppService, validator *validator.Validate) AppHandler {
	return &appHandler{
		appService: appService,
		validator:  validator,
	}
}

func (h *appHandler) CreateApp(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateAppRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateApp, err)
	}

	resp, err := h.appService.CreateApp(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedCreateApp, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessCreateApp)
}

func (h *appHandler) GetApps(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	status := c.Query("status", domain.AppStatusRecruiting)

	apps, count, err := h.appService.GetApps(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetApps, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"apps":       apps,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetApps)
}

func (h *appHandler) GetApp(c *fiber.Ctx) error {
	resp, err := h.appService.GetApp(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetApp, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetApp)
}

func (h *appHandler) GetMyApps(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	apps, count, err := h.appService.GetMyApps(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetApps, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"apps":       apps,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetApps)
}

func (h *appHandler) UpdateApp(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateAppRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateApp, err)
	}

	resp, err := h.appService.UpdateApp(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUpdateApp, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessUpdateApp)
}

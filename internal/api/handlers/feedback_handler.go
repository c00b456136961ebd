package handlers

import (
	"TestBridge-Backend/domain"
	"TestBridge-Backend/internal/api/presenters"
	"TestBridge-Backend/pkg/feedback"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FeedbackHandler interface {
		SubmitFeedback(c *fiber.Ctx) error
		SubmitRatings(c *fiber.Ctx) error
		CreateBugReport(c *fiber.Ctx) error
		GetBugReport(c *fiber.Ctx) error
		GetAppFeedbacks(c *fiber.Ctx) error
		GetMyFeedbacks(c *fiber.Ctx) error
	}

	feedbackHandler struct {
		feedbackService feedback.FeedbackService
		validator       *validator.Validate
	}
)

func NewFeedbackHandler(feedbackService feedback.FeedbackService, validator *validator.Validate) FeedbackHandler {
	return &feedbackHandler{
		feedbackService: feedbackService,
		validator:       validator,
	}
}

func (h *feedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitFeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitFeedback, err)
	}

	resp, err := h.feedbackService.SubmitFeedback(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedSubmitFeedback, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessSubmitFeedback)
}

func (h *feedbackHandler) SubmitRatings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitRatingsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitRatings, err)
	}

	resp, err := h.feedbackService.SubmitRatings(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedSubmitRatings, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessSubmitRatings)
}

func (h *feedbackHandler) CreateBugReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateBugReportRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if form, err := c.MultipartForm(); err == nil {
		req.Images = form.File["images"]
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBugReport, err)
	}

	resp, err := h.feedbackService.CreateBugReport(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedCreateBugReport, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessCreateBugReport)
}

func (h *feedbackHandler) GetBugReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp, err := h.feedbackService.GetBugReport(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetBugReports, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetBugReports)
}

func (h *feedbackHandler) GetAppFeedbacks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	feedbacks, count, err := h.feedbackService.GetAppFeedbacks(c.Context(), c.Params("id"), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetFeedbacks, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"feedbacks":  feedbacks,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetFeedbacks)
}

func (h *feedbackHandler) GetMyFeedbacks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	feedbacks, count, err := h.feedbackService.GetMyFeedbacks(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetFeedbacks, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"feedbacks":  feedbacks,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetFeedbacks)
}

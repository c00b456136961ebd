package routes

import (
	"TestBridge-Backend/internal/api/handlers"
	"TestBridge-Backend/internal/middleware"
	"TestBridge-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                  *fiber.App
	UserHandler          handlers.UserHandler
	AppHandler           handlers.AppHandler
	ParticipationHandler handlers.ParticipationHandler
	FeedbackHandler      handlers.FeedbackHandler
	RewardHandler        handlers.RewardHandler
	NotificationHandler  handlers.NotificationHandler
	MidtransHandler      handlers.MidtransHandler
	Middleware           middleware.Middleware
	JWTService           jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Apps()
	c.Participations()
	c.Feedbacks()
	c.Rewards()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/topup", c.Middleware.AuthMiddleware(c.JWTService), c.MidtransHandler.CreateTopUp)
	}
}

func (c *Config) Apps() {
	apps := c.App.Group("/api/v1/apps", c.Middleware.AuthMiddleware(c.JWTService))

	apps.Post("", c.AppHandler.CreateApp)
	apps.Get("", c.AppHandler.GetApps)
	apps.Get("/mine", c.AppHandler.GetMyApps)
	apps.Get("/:id", c.AppHandler.GetApp)
	apps.Patch("/:id", c.AppHandler.UpdateApp)

	apps.Post("/:id/join", c.ParticipationHandler.JoinApp)
	apps.Get("/:id/participations", c.ParticipationHandler.GetAppParticipations)
	apps.Get("/:id/feedbacks", c.FeedbackHandler.GetAppFeedbacks)
}

func (c *Config) Participations() {
	participations := c.App.Group("/api/v1/participations", c.Middleware.AuthMiddleware(c.JWTService))

	participations.Get("", c.ParticipationHandler.GetMyParticipations)
	participations.Patch("/:id/status", c.ParticipationHandler.UpdateStatus)
}

func (c *Config) Feedbacks() {
	feedbacks := c.App.Group("/api/v1/feedbacks", c.Middleware.AuthMiddleware(c.JWTService))

	feedbacks.Post("", c.FeedbackHandler.SubmitFeedback)
	feedbacks.Get("", c.FeedbackHandler.GetMyFeedbacks)
	feedbacks.Post("/:id/ratings", c.FeedbackHandler.SubmitRatings)
	feedbacks.Post("/:id/bug-report", c.FeedbackHandler.CreateBugReport)
	feedbacks.Get("/:id/bug-report", c.FeedbackHandler.GetBugReport)
}

func (c *Config) Rewards() {
	rewards := c.App.Group("/api/v1/rewards", c.Middleware.AuthMiddleware(c.JWTService))

	rewards.Post("/payout", c.RewardHandler.Payout)
	rewards.Get("/history", c.RewardHandler.GetRewardHistory)
	rewards.Post("/withdrawals", c.RewardHandler.RequestWithdrawal)
	rewards.Get("/withdrawals", c.RewardHandler.GetWithdrawals)
	rewards.Post("/withdrawals/:id/cancel", c.RewardHandler.CancelWithdrawal)
	rewards.Post("/withdrawals/:id/complete", c.RewardHandler.CompleteWithdrawal)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Patch("/read-all", c.NotificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.MidtransHandler.MidtransWebhookHandler)
}

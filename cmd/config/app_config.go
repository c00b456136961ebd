package config

import (
	"os"
	"time"

	"TestBridge-Backend/internal/api/handlers"
	"TestBridge-Backend/internal/api/routes"
	"TestBridge-Backend/internal/middleware"
	"TestBridge-Backend/internal/utils"
	"TestBridge-Backend/internal/utils/storage"
	"TestBridge-Backend/pkg/app"
	"TestBridge-Backend/pkg/feedback"
	"TestBridge-Backend/pkg/jwt"
	"TestBridge-Backend/pkg/midtrans"
	"TestBridge-Backend/pkg/notification"
	"TestBridge-Backend/pkg/participation"
	"TestBridge-Backend/pkg/reward"
	"TestBridge-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	server := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	server.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Seoul",
		Output:     file,
	}))

	server.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	appRepository := app.NewAppRepository(db)
	participationRepository := participation.NewParticipationRepository(db)
	feedbackRepository := feedback.NewFeedbackRepository(db)
	rewardRepository := reward.NewRewardRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	midtransRepository := midtrans.NewMidtransRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	appService := app.NewAppService(appRepository)
	notificationService := notification.NewNotificationService(notificationRepository)
	participationService := participation.NewParticipationService(participationRepository, notificationService)
	feedbackService := feedback.NewFeedbackService(feedbackRepository, notificationService, s3)
	rewardService := reward.NewRewardService(rewardRepository)
	midtransService := midtrans.NewMidtransService(midtransRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	appHandler := handlers.NewAppHandler(appService, validator)
	participationHandler := handlers.NewParticipationHandler(participationService, validator)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, validator)
	rewardHandler := handlers.NewRewardHandler(rewardService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	midtransHandler := handlers.NewMidtransHandler(midtransService, validator)

	// routes
	routesConfig := routes.Config{
		App:                  server,
		UserHandler:          userHandler,
		AppHandler:           appHandler,
		ParticipationHandler: participationHandler,
		FeedbackHandler:      feedbackHandler,
		RewardHandler:        rewardHandler,
		NotificationHandler:  notificationHandler,
		MidtransHandler:      midtransHandler,
		Middleware:           middlewares,
		JWTService:           jwtService,
	}
	routesConfig.Setup()
	return server, nil
}

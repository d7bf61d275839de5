package config

import (
	"os"
	"time"

	"leftunder/internal/api/handlers"
	"leftunder/internal/api/routes"
	"leftunder/internal/middleware"
	"leftunder/internal/utils"
	"leftunder/pkg/food"
	"leftunder/pkg/jwt"
	"leftunder/pkg/reminder"
	"leftunder/pkg/telegram"
	"leftunder/pkg/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
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
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// The sweep endpoint delivers alerts through the bot account.
	botAPI, err := tgbotapi.NewBotAPI(utils.GetConfig("TELEGRAM_BOT_TOKEN"))
	if err != nil {
		return nil, err
	}
	notifier := telegram.NewNotifier(botAPI)

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository)
	foodService := food.NewFoodService(foodRepository, userRepository, utils.ReminderDeltaDays())
	reminderService := reminder.NewReminderService(foodRepository, userRepository, notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		FoodHandler:     foodHandler,
		ReminderHandler: reminderHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

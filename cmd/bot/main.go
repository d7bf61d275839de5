package main

import (
	"log"

	"leftunder/cmd/config"
	migration "leftunder/cmd/database/migrate"
	"leftunder/internal/utils"
	"leftunder/internal/utils/storage"
	"leftunder/pkg/food"
	"leftunder/pkg/reminder"
	"leftunder/pkg/telegram"
	"leftunder/pkg/user"
	"leftunder/pkg/vision"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(utils.GetConfig("TELEGRAM_BOT_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to authorize bot: %v", err)
	}

	s3 := storage.NewAwsS3()

	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)

	userService := user.NewUserService(userRepository)
	foodService := food.NewFoodService(foodRepository, userRepository, utils.ReminderDeltaDays())
	visionService := vision.NewVisionService()
	reminderService := reminder.NewReminderService(foodRepository, userRepository, telegram.NewNotifier(botAPI))

	bot := telegram.NewBot(botAPI, userService, foodService, visionService, reminderService, s3)
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}

package main

import (
	"log"

	"leftunder/cmd/config"
	migration "leftunder/cmd/database/migrate"
	"leftunder/internal/utils"

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

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("Failed to set up app: %v", err)
	}

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

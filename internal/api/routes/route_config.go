package routes

import (
	"leftunder/internal/api/handlers"
	"leftunder/internal/middleware"
	"leftunder/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	FoodHandler     handlers.FoodHandler
	ReminderHandler handlers.ReminderHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodItems()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Post("/register", c.UserHandler.Register)
		user.Get("/telegram/:telegram_user_id", c.UserHandler.GetUser)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))

	foodItems.Post("", c.FoodHandler.CreateFoodItems)
	foodItems.Get("", c.FoodHandler.ReadFoodItems)
	foodItems.Put("", c.FoodHandler.UpdateFoodItems)

	foodItems.Post("/consumed-discarded", c.FoodHandler.MarkConsumedDiscarded)
	foodItems.Post("/delete", c.FoodHandler.DeleteFoodItems)
	foodItems.Get("/sync-reminders", c.ReminderHandler.SyncReminders)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"leftunder/domain"
	"leftunder/entities"
	"leftunder/internal/api/handlers"
	"leftunder/internal/api/routes"
	"leftunder/internal/middleware"
	"leftunder/pkg/food"
	"leftunder/pkg/jwt"
	"leftunder/pkg/reminder"
	"leftunder/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type noopNotifier struct{}

func (noopNotifier) SendExpiryAlert(telegramUserID int64, message string) error { return nil }

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	t.Setenv("SERVICE_JWT_SECRET", "handler-test-secret")

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.FoodItem{}))

	validate := validator.New()
	userRepo := user.NewUserRepository(db)
	foodRepo := food.NewFoodRepository(db)
	userService := user.NewUserService(userRepo)
	foodService := food.NewFoodService(foodRepo, userRepo, 0)
	reminderService := reminder.NewReminderService(foodRepo, userRepo, noopNotifier{})
	jwtService := jwt.NewJWTService()

	app := fiber.New()
	routeConfig := routes.Config{
		App:             app,
		UserHandler:     handlers.NewUserHandler(userService, validate),
		FoodHandler:     handlers.NewFoodHandler(foodService, validate),
		ReminderHandler: handlers.NewReminderHandler(reminderService),
		Middleware:      middleware.NewMiddleware(),
		JWTService:      jwtService,
	}
	routeConfig.Setup()

	return app, jwtService.GenerateServiceToken("bot")
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRoutesRequireServiceToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/food-items?telegram_user_id=1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/food-items?telegram_user_id=1", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPingIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "pong", body["message"])
}

func TestCreateAndReadFoodItems(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users/register", token, domain.RegisterUserPayload{
		TelegramUserID: 400,
		FirstName:      "Dewi",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/food-items", token, domain.CreateFoodItemPayload{
		TelegramUserID: 400,
		ImageURL:       "https://cdn.example.com/receipt.jpg",
		FoodItems: []domain.FoodItemPayload{
			{Name: "Instant Noodles", Category: "Grains", Quantity: 5, Unit: "packet", ShelfLifeDays: shelfLife(180)},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.CreateFoodItemResponse
	decodeBody(t, resp, &created)
	assert.True(t, created.Success)
	require.Len(t, created.FoodItems, 1)
	assert.NotNil(t, created.FoodItems[0].ReminderDate)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/food-items?telegram_user_id=400", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var read domain.ReadFoodItemResponse
	decodeBody(t, resp, &read)
	assert.True(t, read.Success)
	require.Len(t, read.FoodItems, 1)
	assert.Equal(t, "Instant Noodles", read.FoodItems[0].Name)
}

func TestCreateFoodItemsUnknownUser(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/food-items", token, domain.CreateFoodItemPayload{
		TelegramUserID: 401,
		FoodItems: []domain.FoodItemPayload{
			{Name: "Milk", Category: "Dairy", Quantity: 1, Unit: "l"},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body domain.BaseResponse
	decodeBody(t, resp, &body)
	assert.False(t, body.Success)
	assert.Equal(t, domain.MessageUserNotFound, body.Message)
}

func TestSyncRemindersEndpoint(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/food-items/sync-reminders?days_to_expiry=5", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body domain.BaseResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, domain.MessageSuccessSyncReminders, body.Message)
}

func shelfLife(days int) *int { return &days }

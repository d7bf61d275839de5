package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateFoodItems = "Food item created"
	MessageSuccessReadFoodItems   = "Food items read successfully"
	MessageSuccessUpdateFoodItems = "Food items updated"
	MessageSuccessDeleteFoodItems = "Food items deleted"
	MessageSuccessSyncReminders   = "Sync food items success - message sent to telegram user"

	MessageFailedCreateFoodItems = "failed to create food items"
	MessageFailedReadFoodItems   = "failed to read food items"
	MessageFailedUpdateFoodItems = "failed to update food items"
	MessageFailedDeleteFoodItems = "failed to delete food items"
	MessageFailedSyncFetch       = "Failed to fetch expiring items - Sync food items failed"
	MessageFailedSyncSend        = "Unable to send telegram message - Sync food items failed"

	ErrUserNotFound           = errors.New("user not found")
	ErrFoodItemNotFound       = errors.New("food item not found")
	ErrInvalidExpiryDate      = errors.New("invalid expiry date")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrVisionProcessingFailed = errors.New("vision processing failed")
)

// FoodCategories and FoodUnits are the closed vocabularies the vision model
// is prompted with. Values outside them are coerced to the catch-all entry.
var (
	FoodCategories = []string{
		"Fruits", "Vegetables", "Meat", "Dairy", "Snacks", "Beverages",
		"Grains", "Frozen Food", "Canned Food", "Pastries", "Cooked Food",
		"Others",
	}

	FoodUnits = []string{
		"g", "ml", "oz", "l", "kg", "piece", "packet", "bottle", "cup",
		"can", "box", "jar", "container", "carton", "serving", "others",
	}
)

type (
	// FoodItemPayload carries one extracted or manually entered item.
	// ReminderDate is deliberately absent: it is derived server-side.
	FoodItemPayload struct {
		Name                string     `json:"name" validate:"required"`
		Description         string     `json:"description"`
		Category            string     `json:"category" validate:"required"`
		StorageInstructions string     `json:"storage_instructions"`
		Quantity            float64    `json:"quantity" validate:"required,gt=0"`
		Unit                string     `json:"unit" validate:"required"`
		ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
		ShelfLifeDays       *int       `json:"shelf_life_days,omitempty"`
	}

	CreateFoodItemPayload struct {
		TelegramUserID int64             `json:"telegram_user_id" validate:"required"`
		ImageURL       string            `json:"image_url"`
		FoodItems      []FoodItemPayload `json:"food_items" validate:"required,dive"`
	}

	FoodItemUpdatePayload struct {
		ID                  string     `json:"id" validate:"required,uuid"`
		Name                string     `json:"name" validate:"required"`
		Description         string     `json:"description"`
		Category            string     `json:"category" validate:"required"`
		StorageInstructions string     `json:"storage_instructions"`
		Quantity            float64    `json:"quantity" validate:"required,gt=0"`
		Unit                string     `json:"unit" validate:"required"`
		ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
		ShelfLifeDays       *int       `json:"shelf_life_days,omitempty"`
		Consumed            bool       `json:"consumed"`
		Discarded           bool       `json:"discarded"`
	}

	UpdateFoodItemPayload struct {
		TelegramUserID int64                   `json:"telegram_user_id" validate:"required"`
		FoodItems      []FoodItemUpdatePayload `json:"food_items" validate:"required,dive"`
	}

	// FoodItemConsumedDiscarded restricts updates to the two lifecycle flags.
	FoodItemConsumedDiscarded struct {
		ID        string `json:"id" validate:"required,uuid"`
		Consumed  bool   `json:"consumed"`
		Discarded bool   `json:"discarded"`
	}

	ConsumedDiscardedPayload struct {
		TelegramUserID int64                       `json:"telegram_user_id" validate:"required"`
		FoodItems      []FoodItemConsumedDiscarded `json:"food_items" validate:"required,dive"`
	}

	DeleteFoodItemPayload struct {
		TelegramUserID int64    `json:"telegram_user_id" validate:"required"`
		FoodItemIDs    []string `json:"food_items_id" validate:"required,dive,uuid"`
	}

	FoodItemResponse struct {
		ID                  string     `json:"id"`
		Name                string     `json:"name"`
		Description         string     `json:"description"`
		Category            string     `json:"category"`
		StorageInstructions string     `json:"storage_instructions"`
		Quantity            float64    `json:"quantity"`
		Unit                string     `json:"unit"`
		ExpiryDate          time.Time  `json:"expiry_date"`
		ShelfLifeDays       *int       `json:"shelf_life_days,omitempty"`
		ReminderDate        *time.Time `json:"reminder_date,omitempty"`
		UserID              string     `json:"user_id"`
		ImageURL            string     `json:"image_url,omitempty"`
		Consumed            bool       `json:"consumed"`
		Discarded           bool       `json:"discarded"`
		CreatedAt           time.Time  `json:"created_at"`
		UpdatedAt           time.Time  `json:"updated_at"`
	}

	CreateFoodItemResponse struct {
		BaseResponse
		FoodItems []FoodItemResponse `json:"food_items"`
	}

	ReadFoodItemResponse struct {
		BaseResponse
		FoodItems []FoodItemResponse `json:"food_items"`
	}

	UpdateFoodItemResponse struct {
		BaseResponse
		FoodItemsUpdatedSuccess []FoodItemResponse      `json:"food_items_updated_success"`
		FoodItemsUpdatedFailed  []FoodItemUpdatePayload `json:"food_items_updated_failed"`
	}

	ConsumedDiscardedResponse struct {
		BaseResponse
		FoodItemsUpdatedSuccess []FoodItemResponse          `json:"food_items_updated_success"`
		FoodItemsUpdatedFailed  []FoodItemConsumedDiscarded `json:"food_items_updated_failed"`
	}

	DeleteFoodItemResponse struct {
		BaseResponse
		FoodItemsIDDeletedFailed []string `json:"food_items_id_deleted_failed"`
	}
)

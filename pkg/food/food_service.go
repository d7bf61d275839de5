package food

import (
	"context"
	"errors"
	"log"
	"time"

	"leftunder/domain"
	"leftunder/entities"
	"leftunder/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultReminderDeltaDays is how many days before expiry a reminder fires.
const DefaultReminderDeltaDays = 2

type (
	FoodService interface {
		CreateFoodItems(ctx context.Context, payload domain.CreateFoodItemPayload) (domain.CreateFoodItemResponse, error)
		ReadFoodItems(ctx context.Context, telegramUserID int64) (domain.ReadFoodItemResponse, error)
		UpdateFoodItems(ctx context.Context, payload domain.UpdateFoodItemPayload) (domain.UpdateFoodItemResponse, error)
		MarkConsumedDiscarded(ctx context.Context, payload domain.ConsumedDiscardedPayload) (domain.ConsumedDiscardedResponse, error)
		DeleteFoodItems(ctx context.Context, payload domain.DeleteFoodItemPayload) (domain.DeleteFoodItemResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		reminderDelta  int
	}
)

func NewFoodService(foodRepository FoodRepository, userRepository user.UserRepository, reminderDeltaDays int) FoodService {
	if reminderDeltaDays <= 0 {
		reminderDeltaDays = DefaultReminderDeltaDays
	}
	return &foodService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		reminderDelta:  reminderDeltaDays,
	}
}

// DeriveExpiryDate falls back to now + shelf_life_days when the extraction
// supplied no explicit expiry date.
func DeriveExpiryDate(expiryDate *time.Time, shelfLifeDays *int, now time.Time) time.Time {
	if expiryDate != nil {
		return *expiryDate
	}
	days := 0
	if shelfLifeDays != nil {
		days = *shelfLifeDays
	}
	return now.AddDate(0, 0, days)
}

func (s *foodService) deriveReminderDate(expiryDate time.Time) time.Time {
	return expiryDate.AddDate(0, 0, -s.reminderDelta)
}

func (s *foodService) getUser(ctx context.Context, telegramUserID int64) (*entities.User, error) {
	u, err := s.userRepository.GetUserByTelegramID(ctx, telegramUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *foodService) CreateFoodItems(ctx context.Context, payload domain.CreateFoodItemPayload) (domain.CreateFoodItemResponse, error) {
	owner, err := s.getUser(ctx, payload.TelegramUserID)
	if err != nil {
		return domain.CreateFoodItemResponse{}, err
	}

	now := time.Now()
	foodItems := make([]*entities.FoodItem, 0, len(payload.FoodItems))
	for _, item := range payload.FoodItems {
		if item.Quantity <= 0 {
			return domain.CreateFoodItemResponse{}, domain.ErrInvalidQuantity
		}

		expiryDate := DeriveExpiryDate(item.ExpiryDate, item.ShelfLifeDays, now)
		reminderDate := s.deriveReminderDate(expiryDate)

		foodItems = append(foodItems, &entities.FoodItem{
			ID:                  uuid.New(),
			UserID:              owner.ID,
			Name:                item.Name,
			Description:         item.Description,
			Category:            item.Category,
			StorageInstructions: item.StorageInstructions,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			ExpiryDate:          expiryDate,
			ShelfLifeDays:       item.ShelfLifeDays,
			ReminderDate:        &reminderDate,
			ImageURL:            payload.ImageURL,
			Consumed:            false,
			Discarded:           false,
		})
	}

	// Single batch insert: a failure leaves no partial rows behind.
	if err := s.foodRepository.CreateFoodItems(ctx, foodItems); err != nil {
		log.Printf("Error creating food items: %v", err)
		return domain.CreateFoodItemResponse{}, err
	}

	responses := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		responses = append(responses, toFoodItemResponse(item))
	}

	return domain.CreateFoodItemResponse{
		BaseResponse: domain.BaseResponse{Success: true, Message: domain.MessageSuccessCreateFoodItems},
		FoodItems:    responses,
	}, nil
}

func (s *foodService) ReadFoodItems(ctx context.Context, telegramUserID int64) (domain.ReadFoodItemResponse, error) {
	owner, err := s.getUser(ctx, telegramUserID)
	if err != nil {
		return domain.ReadFoodItemResponse{}, err
	}

	foodItems, err := s.foodRepository.GetFoodItemsByUser(ctx, owner.ID)
	if err != nil {
		log.Printf("Error reading food items: %v", err)
		return domain.ReadFoodItemResponse{}, err
	}

	responses := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		responses = append(responses, toFoodItemResponse(item))
	}

	return domain.ReadFoodItemResponse{
		BaseResponse: domain.BaseResponse{Success: true, Message: domain.MessageSuccessReadFoodItems},
		FoodItems:    responses,
	}, nil
}

func (s *foodService) UpdateFoodItems(ctx context.Context, payload domain.UpdateFoodItemPayload) (domain.UpdateFoodItemResponse, error) {
	owner, err := s.getUser(ctx, payload.TelegramUserID)
	if err != nil {
		return domain.UpdateFoodItemResponse{}, err
	}

	now := time.Now()
	updatedSuccess := make([]domain.FoodItemResponse, 0, len(payload.FoodItems))
	updatedFailed := make([]domain.FoodItemUpdatePayload, 0)

	for _, item := range payload.FoodItems {
		expiryDate := DeriveExpiryDate(item.ExpiryDate, item.ShelfLifeDays, now)
		reminderDate := s.deriveReminderDate(expiryDate)

		updates := map[string]interface{}{
			"name":                 item.Name,
			"description":          item.Description,
			"category":             item.Category,
			"storage_instructions": item.StorageInstructions,
			"quantity":             item.Quantity,
			"unit":                 item.Unit,
			"expiry_date":          expiryDate,
			"shelf_life_days":      item.ShelfLifeDays,
			"reminder_date":        reminderDate,
			"consumed":             item.Consumed,
			"discarded":            item.Discarded,
		}

		updated, err := s.foodRepository.UpdateFoodItem(ctx, owner.ID, item.ID, updates)
		if err != nil {
			log.Printf("Error updating food item %s: %v", item.ID, err)
			updatedFailed = append(updatedFailed, item)
			continue
		}
		updatedSuccess = append(updatedSuccess, toFoodItemResponse(updated))
	}

	return domain.UpdateFoodItemResponse{
		BaseResponse:            domain.BaseResponse{Success: true, Message: domain.MessageSuccessUpdateFoodItems},
		FoodItemsUpdatedSuccess: updatedSuccess,
		FoodItemsUpdatedFailed:  updatedFailed,
	}, nil
}

func (s *foodService) MarkConsumedDiscarded(ctx context.Context, payload domain.ConsumedDiscardedPayload) (domain.ConsumedDiscardedResponse, error) {
	owner, err := s.getUser(ctx, payload.TelegramUserID)
	if err != nil {
		return domain.ConsumedDiscardedResponse{}, err
	}

	updatedSuccess := make([]domain.FoodItemResponse, 0, len(payload.FoodItems))
	updatedFailed := make([]domain.FoodItemConsumedDiscarded, 0)

	for _, item := range payload.FoodItems {
		updates := map[string]interface{}{
			"consumed":  item.Consumed,
			"discarded": item.Discarded,
		}

		updated, err := s.foodRepository.UpdateFoodItem(ctx, owner.ID, item.ID, updates)
		if err != nil {
			log.Printf("Error marking food item %s: %v", item.ID, err)
			updatedFailed = append(updatedFailed, item)
			continue
		}
		updatedSuccess = append(updatedSuccess, toFoodItemResponse(updated))
	}

	return domain.ConsumedDiscardedResponse{
		BaseResponse:            domain.BaseResponse{Success: true, Message: domain.MessageSuccessUpdateFoodItems},
		FoodItemsUpdatedSuccess: updatedSuccess,
		FoodItemsUpdatedFailed:  updatedFailed,
	}, nil
}

func (s *foodService) DeleteFoodItems(ctx context.Context, payload domain.DeleteFoodItemPayload) (domain.DeleteFoodItemResponse, error) {
	owner, err := s.getUser(ctx, payload.TelegramUserID)
	if err != nil {
		return domain.DeleteFoodItemResponse{}, err
	}

	deletedFailed := make([]string, 0)
	for _, id := range payload.FoodItemIDs {
		if err := s.foodRepository.DeleteFoodItem(ctx, owner.ID, id); err != nil {
			log.Printf("Error deleting food item %s: %v", id, err)
			deletedFailed = append(deletedFailed, id)
		}
	}

	return domain.DeleteFoodItemResponse{
		BaseResponse:             domain.BaseResponse{Success: true, Message: domain.MessageSuccessDeleteFoodItems},
		FoodItemsIDDeletedFailed: deletedFailed,
	}, nil
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:                  item.ID.String(),
		Name:                item.Name,
		Description:         item.Description,
		Category:            item.Category,
		StorageInstructions: item.StorageInstructions,
		Quantity:            item.Quantity,
		Unit:                item.Unit,
		ExpiryDate:          item.ExpiryDate,
		ShelfLifeDays:       item.ShelfLifeDays,
		ReminderDate:        item.ReminderDate,
		UserID:              item.UserID.String(),
		ImageURL:            item.ImageURL,
		Consumed:            item.Consumed,
		Discarded:           item.Discarded,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

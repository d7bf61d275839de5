package food

import (
	"context"
	"time"

	"leftunder/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		CreateFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error
		GetFoodItemsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, userID uuid.UUID, id string, updates map[string]interface{}) (*entities.FoodItem, error)
		DeleteFoodItem(ctx context.Context, userID uuid.UUID, id string) error

		// Reminder sweep queries. The global fetch serves the daily sweep;
		// the scoped one serves a single user's /reminder request.
		GetExpiringFoodItems(ctx context.Context, triggerDate time.Time) ([]*entities.FoodItem, error)
		GetExpiringFoodItemsByUser(ctx context.Context, userID uuid.UUID, triggerDate time.Time) ([]*entities.FoodItem, error)
		ClearReminderDates(ctx context.Context, ids []uuid.UUID) error
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFoodItems(ctx context.Context, foodItems []*entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItems).Error
}

func (r *foodRepository) GetFoodItemsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, userID uuid.UUID, id string, updates map[string]interface{}) (*entities.FoodItem, error) {
	result := r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, userID uuid.UUID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.FoodItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *foodRepository) GetExpiringFoodItems(ctx context.Context, triggerDate time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("consumed = ? AND discarded = ? AND expiry_date < ?", false, false, triggerDate).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) GetExpiringFoodItemsByUser(ctx context.Context, userID uuid.UUID, triggerDate time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed = ? AND discarded = ? AND expiry_date < ?", userID, false, false, triggerDate).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) ClearReminderDates(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("id IN ?", ids).
		Update("reminder_date", nil).Error
}

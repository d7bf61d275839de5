package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TelegramUserID   int64     `gorm:"uniqueIndex" json:"telegram_user_id"`
	TelegramUsername string    `json:"telegram_username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`

	FoodItems []*FoodItem `gorm:"foreignKey:UserID"`
	Timestamp
}

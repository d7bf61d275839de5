package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodItem struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID  `gorm:"index" json:"user_id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	StorageInstructions string     `json:"storage_instructions"`
	Quantity            float64    `json:"quantity"`
	Unit                string     `json:"unit"`
	ExpiryDate          time.Time  `json:"expiry_date"`
	ShelfLifeDays       *int       `json:"shelf_life_days,omitempty"`
	ReminderDate        *time.Time `json:"reminder_date,omitempty"` // derived, nulled once expired
	ImageURL            string     `json:"image_url,omitempty"`
	Consumed            bool       `json:"consumed"`
	Discarded           bool       `json:"discarded"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"leftunder/domain"
	"leftunder/entities"
	"leftunder/internal/utils"
	"leftunder/pkg/food"
	"leftunder/pkg/user"

	"github.com/google/uuid"
)

type (
	// Notifier delivers one expiry alert to one Telegram user.
	Notifier interface {
		SendExpiryAlert(telegramUserID int64, message string) error
	}

	ReminderService interface {
		// SyncReminderDates runs the sweep: it clears reminder dates on items
		// already past expiry and sends one grouped alert per user for items
		// expiring within daysToExpiry days. A non-zero telegramUserID scopes
		// the whole sweep to that user's items; other users' pending alerts
		// are untouched.
		SyncReminderDates(ctx context.Context, daysToExpiry int, telegramUserID int64) domain.BaseResponse
	}

	reminderService struct {
		foodRepository food.FoodRepository
		userRepository user.UserRepository
		notifier       Notifier
	}
)

func NewReminderService(foodRepository food.FoodRepository, userRepository user.UserRepository, notifier Notifier) ReminderService {
	return &reminderService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		notifier:       notifier,
	}
}

func (s *reminderService) SyncReminderDates(ctx context.Context, daysToExpiry int, telegramUserID int64) domain.BaseResponse {
	now := time.Now().UTC()
	triggerDate := now.AddDate(0, 0, daysToExpiry)

	var expiring []*entities.FoodItem
	var err error
	if telegramUserID != 0 {
		owner, err := s.userRepository.GetUserByTelegramID(ctx, telegramUserID)
		if err != nil {
			log.Printf("Error resolving telegram user %d for sweep: %v", telegramUserID, err)
			return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncFetch}
		}
		expiring, err = s.foodRepository.GetExpiringFoodItemsByUser(ctx, owner.ID, triggerDate)
		if err != nil {
			log.Printf("Error fetching expiring food items for %d: %v", telegramUserID, err)
			return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncFetch}
		}
	} else {
		expiring, err = s.foodRepository.GetExpiringFoodItems(ctx, triggerDate)
		if err != nil {
			log.Printf("Error fetching expiring food items: %v", err)
			return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncFetch}
		}
	}

	// Items whose reminder was already cleared and that are past expiry were
	// alerted on a previous sweep; skip them for good.
	kept := make([]*entities.FoodItem, 0, len(expiring))
	expiredIDs := make([]uuid.UUID, 0)
	for _, item := range expiring {
		if item.ReminderDate == nil && !item.ExpiryDate.After(now) {
			continue
		}
		if item.ExpiryDate.Before(now) {
			expiredIDs = append(expiredIDs, item.ID)
			item.ReminderDate = nil
		}
		kept = append(kept, item)
	}

	if err := s.foodRepository.ClearReminderDates(ctx, expiredIDs); err != nil {
		log.Printf("Error clearing reminder dates: %v", err)
		return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncFetch}
	}

	grouped := make(map[uuid.UUID][]*entities.FoodItem)
	for _, item := range kept {
		grouped[item.UserID] = append(grouped[item.UserID], item)
	}

	for userID, userItems := range grouped {
		owner, err := s.userRepository.GetUserByID(ctx, userID.String())
		if err != nil {
			log.Printf("Error resolving user %s for expiry alert: %v", userID, err)
			return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncSend}
		}

		message := FormatExpiryAlert(userItems, now)
		if err := s.notifier.SendExpiryAlert(owner.TelegramUserID, message); err != nil {
			log.Printf("Error sending expiry alert to %d: %v", owner.TelegramUserID, err)
			return domain.BaseResponse{Success: false, Message: domain.MessageFailedSyncSend}
		}
	}

	return domain.BaseResponse{Success: true, Message: domain.MessageSuccessSyncReminders}
}

// FormatExpiryAlert renders one MarkdownV2 alert for a user's expiring items.
func FormatExpiryAlert(foodItems []*entities.FoodItem, now time.Time) string {
	var b strings.Builder
	b.WriteString("*⏰ Pantry expiry reminder*\n\n")

	for _, item := range foodItems {
		quantity := utils.EscapeMarkdownV2(fmt.Sprintf("%g %s", item.Quantity, item.Unit))
		expiryDate := utils.EscapeMarkdownV2(item.ExpiryDate.Format("2006-01-02"))

		verb := "expires on"
		if item.ExpiryDate.Before(now) {
			verb = "expired on"
		}

		b.WriteString(fmt.Sprintf(
			"🍽 *%s* \\(%s\\) \\- %s %s\n",
			utils.EscapeMarkdownV2(item.Name),
			quantity,
			verb,
			expiryDate,
		))
	}

	b.WriteString("\n📱Manage your *pantry* in the miniapp\\!")
	return b.String()
}

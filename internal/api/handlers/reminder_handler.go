package handlers

import (
	"strconv"

	"leftunder/internal/api/presenters"
	"leftunder/pkg/reminder"

	"github.com/gofiber/fiber/v2"
)

type (
	ReminderHandler interface {
		SyncReminders(c *fiber.Ctx) error
	}

	reminderHandler struct {
		reminderService reminder.ReminderService
	}
)

func NewReminderHandler(reminderService reminder.ReminderService) ReminderHandler {
	return &reminderHandler{reminderService: reminderService}
}

func (h *reminderHandler) SyncReminders(c *fiber.Ctx) error {
	daysToExpiry, err := strconv.Atoi(c.Query("days_to_expiry", "5"))
	if err != nil || daysToExpiry < 0 {
		daysToExpiry = 5
	}

	// telegram_user_id=0 delivers alerts to everyone; non-zero restricts
	// delivery to that user.
	telegramUserID, err := strconv.ParseInt(c.Query("telegram_user_id", "0"), 10, 64)
	if err != nil {
		telegramUserID = 0
	}

	res := h.reminderService.SyncReminderDates(c.Context(), daysToExpiry, telegramUserID)
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

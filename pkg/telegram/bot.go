package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"leftunder/domain"
	"leftunder/internal/utils"
	"leftunder/internal/utils/storage"
	"leftunder/pkg/food"
	"leftunder/pkg/reminder"
	"leftunder/pkg/user"
	"leftunder/pkg/vision"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// reminderWindowDays is the lookahead used when a user asks for /reminder.
const reminderWindowDays = 5

type Bot struct {
	api             *tgbotapi.BotAPI
	userService     user.UserService
	foodService     food.FoodService
	visionService   vision.VisionService
	reminderService reminder.ReminderService
	s3              storage.AwsS3
	logChannelID    int64
	httpClient      *http.Client

	cacheMutex sync.RWMutex
	// resultCache keeps both renderings of each extraction result, keyed by
	// the photo message id. Process-local: lost on restart.
	resultCache map[int]resultMessages
}

func NewBot(
	api *tgbotapi.BotAPI,
	userService user.UserService,
	foodService food.FoodService,
	visionService vision.VisionService,
	reminderService reminder.ReminderService,
	s3 storage.AwsS3,
) *Bot {
	logChannelID, _ := strconv.ParseInt(utils.GetConfig("TELEGRAM_LOG_CHANNEL_ID"), 10, 64)

	return &Bot{
		api:             api,
		userService:     userService,
		foodService:     foodService,
		visionService:   visionService,
		reminderService: reminderService,
		s3:              s3,
		logChannelID:    logChannelID,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		resultCache:     make(map[int]resultMessages),
	}
}

// Run consumes updates until the channel closes. Production uses the webhook
// registered under TELEGRAM_WEBHOOK_URL, everything else long polling.
func (b *Bot) Run() error {
	var updates tgbotapi.UpdatesChannel

	if utils.GetConfig("PRODUCTION") == "true" {
		webhookURL := fmt.Sprintf("%s/%s", utils.GetConfig("TELEGRAM_WEBHOOK_URL"), b.api.Token)
		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			return err
		}
		if _, err := b.api.Request(wh); err != nil {
			return err
		}
		updates = b.api.ListenForWebhook("/" + b.api.Token)
		go func() {
			if err := http.ListenAndServe(":8443", nil); err != nil {
				log.Fatalf("webhook server stopped: %v", err)
			}
		}()
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		u.AllowedUpdates = []string{tgbotapi.UpdateTypeMessage, tgbotapi.UpdateTypeCallbackQuery}
		updates = b.api.GetUpdatesChan(u)
	}

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for update := range updates {
		go b.handleUpdate(update)
	}
	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message == nil:
		return
	case update.Message.IsCommand():
		b.handleCommand(update.Message)
	case len(update.Message.Photo) > 0:
		b.handlePhoto(update.Message)
	default:
		b.sendText(update.Message.Chat.ID, cannotConverseMessage)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "help":
		b.sendText(message.Chat.ID, helpMessage)
	case "reminder":
		res := b.reminderService.SyncReminderDates(ctx, reminderWindowDays, message.Chat.ID)
		if !res.Success {
			b.sendText(message.Chat.ID, "⛔️ Could not check your pantry right now. Please try again.")
		}
	default:
		b.sendText(message.Chat.ID, helpMessage)
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	firstName := message.Chat.FirstName

	_, err := b.userService.GetUser(ctx, message.Chat.ID)
	if err == nil {
		b.sendText(message.Chat.ID, fmt.Sprintf(startMessageExisting, firstName))
		return
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		b.logError(err, "start: get user")
		b.sendText(message.Chat.ID, "Error processing the bot request. Please try again.")
		return
	}

	_, err = b.userService.RegisterUser(ctx, domain.RegisterUserPayload{
		TelegramUserID:   message.Chat.ID,
		TelegramUsername: message.Chat.UserName,
		FirstName:        message.Chat.FirstName,
		LastName:         message.Chat.LastName,
	})
	if err != nil {
		b.logError(err, "start: register user")
		b.sendText(message.Chat.ID, "Error processing the bot request. Please try again.")
		return
	}

	b.sendText(message.Chat.ID, fmt.Sprintf(startMessageNew, firstName))
}

func (b *Bot) handlePhoto(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	chatID := message.Chat.ID

	loader := tgbotapi.NewMessage(chatID, loaderMessage)
	loader.ReplyToMessageID = message.MessageID
	loader.ParseMode = tgbotapi.ModeMarkdownV2
	loaderMsg, err := b.api.Send(loader)
	if err != nil {
		b.logError(err, "photo: send loader")
	}

	// Highest resolution photo is last.
	target := message.Photo[len(message.Photo)-1]
	imageURL, err := b.uploadPhoto(ctx, target.FileID)
	if err != nil {
		b.logError(err, "photo: upload")
		b.deleteMessage(chatID, loaderMsg.MessageID)
		b.replyText(chatID, message.MessageID, "⛔️ Error processing image. Please try again.")
		return
	}

	extraction, err := b.visionService.ExtractFoodItems(ctx, imageURL)
	if err != nil {
		b.logError(err, "photo: extraction")
		b.deleteMessage(chatID, loaderMsg.MessageID)
		b.replyMarkdown(chatID, message.MessageID, utils.EscapeMarkdownV2("🚨 An error occurred while processing the image, please try again."), nil)
		return
	}

	if len(extraction.FoodItems) == 0 {
		b.deleteMessage(chatID, loaderMsg.MessageID)
		b.replyMarkdown(chatID, message.MessageID, utils.EscapeMarkdownV2("⚠️ No food items detected in the image."), nil)
		return
	}

	payload := domain.CreateFoodItemPayload{
		TelegramUserID: chatID,
		ImageURL:       imageURL,
	}
	for _, item := range extraction.FoodItems {
		payload.FoodItems = append(payload.FoodItems, domain.FoodItemPayload{
			Name:                item.FoodName,
			Description:         item.Description,
			Category:            item.Category,
			StorageInstructions: item.StorageInstructions,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			ExpiryDate:          item.ExpiryDate,
			ShelfLifeDays:       item.ShelfLifeDays,
		})
	}

	if _, err := b.foodService.CreateFoodItems(ctx, payload); err != nil {
		b.logError(err, "photo: create food items")
		b.deleteMessage(chatID, loaderMsg.MessageID)
		b.replyMarkdown(chatID, message.MessageID, utils.EscapeMarkdownV2("😥 Sorry, something went wrong while saving these food items to the pantry"), nil)
		return
	}

	messages := formatExtractionResult(extraction.FoodItems)
	b.cacheMutex.Lock()
	b.resultCache[message.MessageID] = messages
	b.cacheMutex.Unlock()

	b.deleteMessage(chatID, loaderMsg.MessageID)
	b.replyMarkdown(chatID, message.MessageID, messages.Short, showMoreKeyboard(message.MessageID))
}

// handleCallback swaps a result message between its short and full variants.
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logError(err, "callback: ack")
	}

	action, photoMessageID, ok := parseCallbackData(callback.Data)
	if !ok || callback.Message == nil {
		return
	}

	b.cacheMutex.RLock()
	messages, found := b.resultCache[photoMessageID]
	b.cacheMutex.RUnlock()
	if !found {
		// Cache is process-local; after a restart the variants are gone.
		b.sendText(callback.Message.Chat.ID, "That message has expired, please send the photo again.")
		return
	}

	text := messages.Short
	keyboard := showMoreKeyboard(photoMessageID)
	if action == "show_more" {
		text = messages.Full
		keyboard = showLessKeyboard(photoMessageID)
	}

	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Send(edit); err != nil {
		b.logError(err, "callback: edit message")
	}
}

func (b *Bot) uploadPhoto(ctx context.Context, fileID string) (string, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("photo download failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	objectKey, err := b.s3.UploadFile(
		fmt.Sprintf("%s.jpg", uuid.New()),
		bytes.NewReader(body),
		"image/jpeg",
		"",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	return b.s3.GetPublicLinkKey(objectKey), nil
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logError(err, "send text")
	}
}

func (b *Bot) replyText(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if _, err := b.api.Send(msg); err != nil {
		b.logError(err, "reply text")
	}
}

func (b *Bot) replyMarkdown(chatID int64, replyTo int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logError(err, "reply markdown")
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logError(err, "delete message")
	}
}

// logError logs locally and mirrors the error to the ops log channel when
// one is configured.
func (b *Bot) logError(err error, context string) {
	log.Printf("Error %s: %v", context, err)
	if b.logChannelID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(b.logChannelID, fmt.Sprintf("🚨 %s: %v", context, err))
	if _, sendErr := b.api.Send(msg); sendErr != nil {
		log.Printf("Error sending to log channel: %v", sendErr)
	}
}

func showMoreKeyboard(photoMessageID int) *tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Show more", fmt.Sprintf("show_more:%d", photoMessageID)),
		),
	)
	return &keyboard
}

func showLessKeyboard(photoMessageID int) *tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙈 Show less", fmt.Sprintf("show_less:%d", photoMessageID)),
		),
	)
	return &keyboard
}

func parseCallbackData(data string) (action string, photoMessageID int, ok bool) {
	var id int
	if _, err := fmt.Sscanf(data, "show_more:%d", &id); err == nil {
		return "show_more", id, true
	}
	if _, err := fmt.Sscanf(data, "show_less:%d", &id); err == nil {
		return "show_less", id, true
	}
	return "", 0, false
}

package reminder

import (
	"context"
	"testing"
	"time"

	"leftunder/domain"
	"leftunder/entities"
	"leftunder/pkg/food"
	"leftunder/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type fakeNotifier struct {
	sent map[int64][]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(map[int64][]string)}
}

func (f *fakeNotifier) SendExpiryAlert(telegramUserID int64, message string) error {
	f.sent[telegramUserID] = append(f.sent[telegramUserID], message)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.FoodItem{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func newSweep(t *testing.T) (ReminderService, *fakeNotifier, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	notifier := newFakeNotifier()
	svc := NewReminderService(food.NewFoodRepository(db), user.NewUserRepository(db), notifier)
	return svc, notifier, db
}

func seedUser(t *testing.T, db *gorm.DB, telegramUserID int64) *entities.User {
	t.Helper()
	u := &entities.User{ID: uuid.New(), TelegramUserID: telegramUserID, FirstName: "Pantry"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedFoodItem(t *testing.T, db *gorm.DB, owner *entities.User, name string, expiry time.Time, reminder *time.Time, consumed bool) *entities.FoodItem {
	t.Helper()
	item := &entities.FoodItem{
		ID:           uuid.New(),
		UserID:       owner.ID,
		Name:         name,
		Category:     "Others",
		Quantity:     1,
		Unit:         "piece",
		ExpiryDate:   expiry,
		ReminderDate: reminder,
		Consumed:     consumed,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func reminderPtr(v time.Time) *time.Time { return &v }

func TestSyncReminderDatesClearsExpiredAndAlerts(t *testing.T) {
	svc, notifier, db := newSweep(t)
	owner := seedUser(t, db, 200)
	now := time.Now().UTC()

	expired := seedFoodItem(t, db, owner, "Old Milk", now.AddDate(0, 0, -1), reminderPtr(now.AddDate(0, 0, -3)), false)
	expiring := seedFoodItem(t, db, owner, "Yogurt", now.AddDate(0, 0, 2), reminderPtr(now), false)
	seedFoodItem(t, db, owner, "Eaten Bread", now.AddDate(0, 0, 1), reminderPtr(now), true)
	seedFoodItem(t, db, owner, "Canned Beans", now.AddDate(1, 0, 0), reminderPtr(now.AddDate(1, 0, -2)), false)

	resp := svc.SyncReminderDates(context.Background(), 5, 0)
	assert.True(t, resp.Success)
	assert.Equal(t, domain.MessageSuccessSyncReminders, resp.Message)

	require.Len(t, notifier.sent[200], 1)
	message := notifier.sent[200][0]
	assert.Contains(t, message, "Old Milk")
	assert.Contains(t, message, "Yogurt")
	assert.NotContains(t, message, "Eaten Bread")
	assert.NotContains(t, message, "Canned Beans")

	var got entities.FoodItem
	require.NoError(t, db.First(&got, "id = ?", expired.ID).Error)
	assert.Nil(t, got.ReminderDate)

	var gotExpiring entities.FoodItem
	require.NoError(t, db.First(&gotExpiring, "id = ?", expiring.ID).Error)
	assert.NotNil(t, gotExpiring.ReminderDate)
}

func TestSyncReminderDatesSkipsAlreadyAlerted(t *testing.T) {
	svc, notifier, db := newSweep(t)
	owner := seedUser(t, db, 201)
	now := time.Now().UTC()

	// Reminder already cleared on a previous sweep.
	seedFoodItem(t, db, owner, "Stale Rice", now.AddDate(0, 0, -2), nil, false)

	resp := svc.SyncReminderDates(context.Background(), 5, 0)
	assert.True(t, resp.Success)
	assert.Empty(t, notifier.sent)
}

func TestSyncReminderDatesTargetsSingleUser(t *testing.T) {
	svc, notifier, db := newSweep(t)
	alice := seedUser(t, db, 202)
	bob := seedUser(t, db, 203)
	now := time.Now().UTC()

	seedFoodItem(t, db, alice, "Spinach", now.AddDate(0, 0, 1), reminderPtr(now), false)
	seedFoodItem(t, db, bob, "Salmon", now.AddDate(0, 0, 1), reminderPtr(now), false)

	resp := svc.SyncReminderDates(context.Background(), 5, alice.TelegramUserID)
	assert.True(t, resp.Success)

	require.Len(t, notifier.sent[202], 1)
	assert.Contains(t, notifier.sent[202][0], "Spinach")
	assert.Empty(t, notifier.sent[203])
}

func TestSyncReminderDatesSingleUserLeavesOthersUntouched(t *testing.T) {
	svc, notifier, db := newSweep(t)
	alice := seedUser(t, db, 204)
	bob := seedUser(t, db, 205)
	now := time.Now().UTC()

	aliceItem := seedFoodItem(t, db, alice, "Old Juice", now.AddDate(0, 0, -1), reminderPtr(now.AddDate(0, 0, -3)), false)
	bobItem := seedFoodItem(t, db, bob, "Old Stew", now.AddDate(0, 0, -1), reminderPtr(now.AddDate(0, 0, -3)), false)

	resp := svc.SyncReminderDates(context.Background(), 5, alice.TelegramUserID)
	assert.True(t, resp.Success)

	require.Len(t, notifier.sent[204], 1)
	assert.Contains(t, notifier.sent[204][0], "Old Juice")
	assert.Empty(t, notifier.sent[205])

	// Alice's expired item is cleared; Bob's pending alert survives her sweep.
	var got entities.FoodItem
	require.NoError(t, db.First(&got, "id = ?", aliceItem.ID).Error)
	assert.Nil(t, got.ReminderDate)

	var gotBob entities.FoodItem
	require.NoError(t, db.First(&gotBob, "id = ?", bobItem.ID).Error)
	assert.NotNil(t, gotBob.ReminderDate)

	// The daily sweep still delivers Bob's expired-item alert.
	resp = svc.SyncReminderDates(context.Background(), 5, 0)
	assert.True(t, resp.Success)
	require.Len(t, notifier.sent[205], 1)
	assert.Contains(t, notifier.sent[205][0], "Old Stew")
}

func TestSyncReminderDatesUnknownUser(t *testing.T) {
	svc, notifier, _ := newSweep(t)

	resp := svc.SyncReminderDates(context.Background(), 5, 999)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.MessageFailedSyncFetch, resp.Message)
	assert.Empty(t, notifier.sent)
}

func TestFormatExpiryAlert(t *testing.T) {
	now := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)
	items := []*entities.FoodItem{
		{Name: "Milk", Quantity: 1, Unit: "l", ExpiryDate: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{Name: "Old Cheese", Quantity: 0.5, Unit: "kg", ExpiryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := FormatExpiryAlert(items, now)

	want := "*⏰ Pantry expiry reminder*\n\n" +
		"🍽 *Milk* \\(1 l\\) \\- expires on 2025\\-06\\-07\n" +
		"🍽 *Old Cheese* \\(0\\.5 kg\\) \\- expired on 2025\\-06\\-01\n" +
		"\n📱Manage your *pantry* in the miniapp\\!"
	assert.Equal(t, want, got)
}

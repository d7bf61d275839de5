package food

import (
	"context"
	"testing"
	"time"

	"leftunder/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

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

func TestUpdateFoodItemNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)

	_, err := repo.UpdateFoodItem(context.Background(), uuid.New(), uuid.New().String(), map[string]interface{}{
		"name": "Nothing",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClearReminderDatesEmptyIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)

	assert.NoError(t, repo.ClearReminderDates(context.Background(), nil))
}

func TestGetExpiringFoodItemsOrderedByExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)
	owner := seedUser(t, db, 110)
	now := time.Now().UTC()

	later := &entities.FoodItem{ID: uuid.New(), UserID: owner.ID, Name: "Later", Quantity: 1, Unit: "piece", ExpiryDate: now.AddDate(0, 0, 3)}
	sooner := &entities.FoodItem{ID: uuid.New(), UserID: owner.ID, Name: "Sooner", Quantity: 1, Unit: "piece", ExpiryDate: now.AddDate(0, 0, 1)}
	require.NoError(t, db.Create(later).Error)
	require.NoError(t, db.Create(sooner).Error)

	items, err := repo.GetExpiringFoodItems(context.Background(), now.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sooner", items[0].Name)
	assert.Equal(t, "Later", items[1].Name)
}

package vision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionPlainJSON(t *testing.T) {
	result, err := ParseExtraction(`{
		"food_items": [
			{
				"food_name": "Cherry Tomatoes",
				"category": "Vegetables",
				"description": "A punnet of ripe cherry tomatoes.",
				"storage_instructions": "Store at room temperature",
				"quantity": 1,
				"unit": "packet",
				"expiry_date": "2025-09-01",
				"shelf_life_days": null,
				"percentage_remaining": 100
			}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)

	got := result.FoodItems[0]
	assert.Equal(t, "Cherry Tomatoes", got.FoodName)
	assert.Equal(t, "Vegetables", got.Category)
	assert.Equal(t, "packet", got.Unit)
	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, 100, got.PercentageRemaining)
	assert.Nil(t, got.ShelfLifeDays)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *got.ExpiryDate)
}

func TestParseExtractionStripsMarkdownFence(t *testing.T) {
	result, err := ParseExtraction("Here you go:\n```json\n{\"food_items\": [{\"food_name\": \"Oat Milk\", \"category\": \"Beverages\", \"quantity\": 1, \"unit\": \"carton\"}]}\n```")
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)
	assert.Equal(t, "Oat Milk", result.FoodItems[0].FoodName)
}

func TestParseExtractionAlternativeFieldNames(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": [{"name": "Granola", "category": "Snacks", "quantity": 2, "units": "box", "shelf_life_days": 90.0}]}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)

	got := result.FoodItems[0]
	assert.Equal(t, "Granola", got.FoodName)
	assert.Equal(t, "box", got.Unit)
	require.NotNil(t, got.ShelfLifeDays)
	assert.Equal(t, 90, *got.ShelfLifeDays)
}

func TestParseExtractionCoercesVocabulary(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": [{"food_name": "Kimchi", "category": "Fermented", "quantity": 1, "unit": "tub"}]}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)

	got := result.FoodItems[0]
	assert.Equal(t, "Others", got.Category)
	assert.Equal(t, "others", got.Unit)
}

func TestParseExtractionCaseInsensitiveVocabulary(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": [{"food_name": "Apples", "category": "fruits", "quantity": 4, "unit": "PIECE"}]}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)
	assert.Equal(t, "Fruits", result.FoodItems[0].Category)
	assert.Equal(t, "piece", result.FoodItems[0].Unit)
}

func TestParseExtractionClampsValues(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": [
		{"food_name": "Mystery Jar", "category": "Others", "quantity": 0, "unit": "jar", "percentage_remaining": 250},
		{"category": "Others", "quantity": -3, "unit": "can", "shelf_life_days": -5}
	]}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 2)

	first := result.FoodItems[0]
	assert.Equal(t, 1.0, first.Quantity)
	assert.Equal(t, 100, first.PercentageRemaining)

	second := result.FoodItems[1]
	assert.Equal(t, "Unknown Food", second.FoodName)
	assert.Equal(t, 1.0, second.Quantity)
	assert.Nil(t, second.ShelfLifeDays)
}

func TestParseExtractionInvalidExpiryDropped(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": [{"food_name": "Tofu", "category": "Others", "quantity": 1, "unit": "packet", "expiry_date": "next Tuesday"}]}`)
	require.NoError(t, err)
	require.Len(t, result.FoodItems, 1)
	assert.Nil(t, result.FoodItems[0].ExpiryDate)
}

func TestParseExtractionEmptyItems(t *testing.T) {
	result, err := ParseExtraction(`{"food_items": []}`)
	require.NoError(t, err)
	assert.Empty(t, result.FoodItems)
}

func TestParseExtractionMalformed(t *testing.T) {
	_, err := ParseExtraction("I could not find any food in this image.")
	assert.Error(t, err)
}

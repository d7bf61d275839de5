package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"leftunder/domain"
	"leftunder/internal/utils"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPrompt = `You are a professional food cataloger.
You identify food items in the image and provide structured information about them.
Respond ONLY with a valid JSON object of the shape:
{"food_items": [{"food_name": string (max 3 words), "category": string, "description": string (1 sentence), "storage_instructions": string, "quantity": number, "unit": string, "expiry_date": string in YYYY-MM-DD format or null, "shelf_life_days": number or null, "percentage_remaining": number between 0 and 100}]}
Category must be one of: %s.
Unit must be one of: %s.
If no expiry date is visible, estimate shelf_life_days instead and leave expiry_date null.
If no food items are detected respond with {"food_items": []}.
Do not include any explanations, markdown formatting, or extra text.`

type (
	// ExtractedFoodItem is one vision-model detection before normalization
	// into a persistable record.
	ExtractedFoodItem struct {
		FoodName            string     `json:"food_name"`
		Category            string     `json:"category"`
		Description         string     `json:"description"`
		StorageInstructions string     `json:"storage_instructions"`
		Quantity            float64    `json:"quantity"`
		Unit                string     `json:"unit"`
		ExpiryDate          *time.Time `json:"-"`
		ShelfLifeDays       *int       `json:"shelf_life_days"`
		PercentageRemaining int        `json:"percentage_remaining"`
	}

	ExtractionResult struct {
		FoodItems []ExtractedFoodItem `json:"food_items"`
	}

	VisionService interface {
		ExtractFoodItems(ctx context.Context, imageURL string) (ExtractionResult, error)
	}

	visionService struct {
		httpClient *http.Client
	}
)

func NewVisionService() VisionService {
	return &visionService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *visionService) ExtractFoodItems(ctx context.Context, imageURL string) (ExtractionResult, error) {
	apiKey := utils.GetConfig("OPENAI_API_KEY")
	if apiKey == "" {
		return ExtractionResult{}, fmt.Errorf("OPENAI_API_KEY not set")
	}

	model := utils.GetConfig("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}

	requestBody := map[string]interface{}{
		"model":       model,
		"temperature": 0.5,
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
		"messages": []map[string]interface{}{
			{
				"role": "system",
				"content": fmt.Sprintf(
					systemPrompt,
					strings.Join(domain.FoodCategories, ", "),
					strings.Join(domain.FoodUnits, ", "),
				),
			},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url":    imageURL,
							"detail": "high",
						},
					},
				},
			},
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return ExtractionResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewBuffer(requestJSON))
	if err != nil {
		return ExtractionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ExtractionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ExtractionResult{}, fmt.Errorf("openai API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return ExtractionResult{}, err
	}

	if len(completion.Choices) == 0 {
		return ExtractionResult{}, domain.ErrVisionProcessingFailed
	}

	return ParseExtraction(completion.Choices[0].Message.Content)
}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseExtraction turns raw model output into a sanitized result. The model
// occasionally wraps JSON in markdown fences or prose despite instructions.
func ParseExtraction(responseText string) (ExtractionResult, error) {
	if match := jsonPattern.FindString(responseText); match != "" {
		responseText = match
	}

	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	type rawFoodItem struct {
		FoodName            string   `json:"food_name"`
		Name                string   `json:"name"`
		Category            string   `json:"category"`
		Description         string   `json:"description"`
		StorageInstructions string   `json:"storage_instructions"`
		Quantity            float64  `json:"quantity"`
		Unit                string   `json:"unit"`
		Units               string   `json:"units"`
		ExpiryDate          *string  `json:"expiry_date"`
		ShelfLifeDays       *float64 `json:"shelf_life_days"`
		PercentageRemaining *int     `json:"percentage_remaining"`
	}
	var raw struct {
		FoodItems []rawFoodItem `json:"food_items"`
	}

	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return ExtractionResult{}, fmt.Errorf("failed to parse vision response: %w - raw response: %s", err, responseText)
	}

	result := ExtractionResult{FoodItems: make([]ExtractedFoodItem, 0, len(raw.FoodItems))}
	for _, item := range raw.FoodItems {
		name := item.FoodName
		if name == "" {
			name = item.Name
		}
		if name == "" {
			name = "Unknown Food"
		}

		unit := item.Unit
		if unit == "" {
			unit = item.Units
		}

		extracted := ExtractedFoodItem{
			FoodName:            name,
			Category:            coerceVocabulary(item.Category, domain.FoodCategories),
			Description:         item.Description,
			StorageInstructions: item.StorageInstructions,
			Quantity:            item.Quantity,
			Unit:                coerceVocabulary(unit, domain.FoodUnits),
			PercentageRemaining: 100,
		}

		if extracted.Quantity <= 0 {
			extracted.Quantity = 1
		}
		if item.PercentageRemaining != nil && *item.PercentageRemaining >= 0 && *item.PercentageRemaining <= 100 {
			extracted.PercentageRemaining = *item.PercentageRemaining
		}
		if item.ShelfLifeDays != nil && *item.ShelfLifeDays >= 0 {
			days := int(*item.ShelfLifeDays)
			extracted.ShelfLifeDays = &days
		}
		if item.ExpiryDate != nil {
			if parsed, err := parseExpiryDate(*item.ExpiryDate); err == nil {
				extracted.ExpiryDate = &parsed
			}
		}

		result.FoodItems = append(result.FoodItems, extracted)
	}

	return result, nil
}

func parseExpiryDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, domain.ErrInvalidExpiryDate
}

// coerceVocabulary maps out-of-vocabulary values onto the catch-all entry,
// which every vocabulary keeps as its last element.
func coerceVocabulary(value string, vocabulary []string) string {
	for _, allowed := range vocabulary {
		if strings.EqualFold(value, allowed) {
			return allowed
		}
	}
	return vocabulary[len(vocabulary)-1]
}

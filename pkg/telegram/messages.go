package telegram

import (
	"fmt"
	"strings"
	"time"

	"leftunder/internal/utils"
	"leftunder/pkg/vision"
)

const startMessageExisting = `Welcome back to LeftUnder, %s! 🌟 We're thrilled to see you again. Here's a quick reminder of the great features you can start using right away.

📋 Pantry Tracker: Organize pantry items and track expiration dates.

💡 Storage Tips: Maximize shelf life with expert storage advice.

Start by sending a picture or multiple pictures 📸 of the food items you want to track!`

const startMessageNew = `Welcome to LeftUnder, %s! 🎉

We have just signed you up for the LeftUnder food tracker.

Try the food tracker by sending a picture or multiple pictures 📸 of the food items you want to track! 🥗🍎🥖`

const helpMessage = `Forgot how to use the bot? 🤣

Here's a quick guide to get you started:

1. 📸 Send pictures of the food item you want to the bot.
2. ⏳ Wait for the bot to identify the food item.
3. 🗂 Manage your food items with /reminder and the pantry tracker.
4. ⏰ Get automatic reminders when your food items are about to expire.`

const cannotConverseMessage = "Oops...😱 I can't converse but do send me 📸 some food pictures so I can start tracking!"

const loaderMessage = "🔍Extracting food information✨\n⏱️_Ready in 10 \\- 15s🙏_"

// resultMessages holds both renderings of one extraction result. The short
// variant lists names only; the full variant includes every field.
type resultMessages struct {
	Full  string
	Short string
}

func formatExtractionResult(items []vision.ExtractedFoodItem) resultMessages {
	fullParts := make([]string, 0, len(items))
	shortParts := make([]string, 0, len(items))

	for i, item := range items {
		expiryDate := "estimating"
		if item.ExpiryDate != nil {
			expiryDate = item.ExpiryDate.Format("2006-01-02")
		} else if item.ShelfLifeDays != nil {
			expiryDate = time.Now().AddDate(0, 0, *item.ShelfLifeDays).Format("2006-01-02")
		}

		fullParts = append(fullParts, fmt.Sprintf(
			">__*%s \\(%s\\)*__\n>📖 \\- %s\n>🗄 \\- %s\n>⏳ \\- Use by %s\n>🥡 \\- %d%% remaining",
			utils.EscapeMarkdownV2(item.FoodName),
			utils.EscapeMarkdownV2(fmt.Sprintf("%g %s", item.Quantity, item.Unit)),
			utils.EscapeMarkdownV2(item.Description),
			utils.EscapeMarkdownV2(item.StorageInstructions),
			utils.EscapeMarkdownV2(expiryDate),
			item.PercentageRemaining,
		))

		shortParts = append(shortParts, fmt.Sprintf(
			"%d\\. __*%s*__",
			i+1,
			utils.EscapeMarkdownV2(item.FoodName),
		))
	}

	plural := ""
	if len(items) > 1 {
		plural = "s"
	}
	header := fmt.Sprintf("*✨🔮Found %d food item%s🔮✨*\n\n", len(items), plural)
	footer := "\n\n📱Manage your *pantry* with /reminder\\!"

	return resultMessages{
		Full:  header + "**>" + strings.Join(fullParts, "\n>\n") + "||" + footer,
		Short: header + strings.Join(shortParts, "\n") + footer,
	}
}

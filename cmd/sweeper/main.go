package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"leftunder/internal/utils"
	"leftunder/pkg/jwt"

	"github.com/joho/godotenv"
)

// The sweep fires once a day at this UTC hour.
const sweepHourUTC = 9

const maxRetries = 5

func main() {
	_ = godotenv.Load()
	utils.LoadConfig()

	sweepURL := utils.GetConfig("SWEEP_URL")
	if sweepURL == "" {
		sweepURL = "http://localhost:8080/api/v1/food-items/sync-reminders"
	}

	jwtService := jwt.NewJWTService()
	client := &http.Client{Timeout: 60 * time.Second}

	for {
		next := nextSweepTime(time.Now().UTC())
		log.Printf("Next sweep at %s", next.Format(time.RFC3339))
		time.Sleep(time.Until(next))

		if err := triggerSweepWithRetry(client, jwtService, sweepURL); err != nil {
			log.Printf("Max retries reached: %v", err)
		}
	}
}

func nextSweepTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), sweepHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// triggerSweepWithRetry calls the sweep endpoint with a doubling backoff,
// capped at maxRetries attempts. Retry state is not persisted.
func triggerSweepWithRetry(client *http.Client, jwtService jwt.JWTService, sweepURL string) error {
	delay := time.Second

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := triggerSweep(client, jwtService, sweepURL); err != nil {
			lastErr = err
			log.Printf("Attempt %d: %v", attempt, err)
			if attempt < maxRetries {
				log.Printf("Retrying in %s...", delay)
				time.Sleep(delay)
				delay *= 2
			}
			continue
		}
		log.Printf("Sweep trigger successful")
		return nil
	}

	return lastErr
}

func triggerSweep(client *http.Client, jwtService jwt.JWTService, sweepURL string) error {
	req, err := http.NewRequest(http.MethodGet, sweepURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+jwtService.GenerateServiceToken("sweeper"))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sweep trigger failed: %s", resp.Status)
	}
	return nil
}

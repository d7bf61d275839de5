package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Telegram configuration
	TelegramBotToken     string `yaml:"TELEGRAM_BOT_TOKEN"`
	TelegramLogChannelID string `yaml:"TELEGRAM_LOG_CHANNEL_ID"`
	TelegramWebhookURL   string `yaml:"TELEGRAM_WEBHOOK_URL"`
	Production           bool   `yaml:"PRODUCTION"`

	// AWS S3 configuration
	AWSS3Bucket      string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region      string `yaml:"AWS_S3_REGION"`
	AWSAccessKey     string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey     string `yaml:"AWS_SECRET_KEY"`
	StoragePublicURL string `yaml:"STORAGE_PUBLIC_URL"`

	// OpenAI vision configuration
	OpenAIAPIKey string `yaml:"OPENAI_API_KEY"`
	OpenAIModel  string `yaml:"OPENAI_MODEL"`

	// Reminder configuration
	ReminderDeltaDays string `yaml:"REMINDER_DELTA_DAYS"`
	SweepURL          string `yaml:"SWEEP_URL"`

	// Service token secret for the internal REST surface
	ServiceJWTSecret string `yaml:"SERVICE_JWT_SECRET"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig resolves a key from the environment first, then from config.yaml.
func GetConfig(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "TELEGRAM_BOT_TOKEN":
		return config.TelegramBotToken
	case "TELEGRAM_LOG_CHANNEL_ID":
		return config.TelegramLogChannelID
	case "TELEGRAM_WEBHOOK_URL":
		return config.TelegramWebhookURL
	case "PRODUCTION":
		if config.Production {
			return "true"
		}
		return "false"
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "STORAGE_PUBLIC_URL":
		return config.StoragePublicURL
	case "OPENAI_API_KEY":
		return config.OpenAIAPIKey
	case "OPENAI_MODEL":
		return config.OpenAIModel
	case "REMINDER_DELTA_DAYS":
		return config.ReminderDeltaDays
	case "SWEEP_URL":
		return config.SweepURL
	case "SERVICE_JWT_SECRET":
		return config.ServiceJWTSecret
	default:
		return ""
	}
}

// ReminderDeltaDays returns how many days before expiry reminders fire.
// Zero means "use the service default".
func ReminderDeltaDays() int {
	days, err := strconv.Atoi(GetConfig("REMINDER_DELTA_DAYS"))
	if err != nil || days <= 0 {
		return 0
	}
	return days
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=plannova port=5432 sslmode=disable TimeZone=Asia/Kolkata"

var (
	API_ENV          string
	API_PORT         string
	APP_HOST         string
	MAINTENANCE_MODE bool
	JWT_SECRET       string
	STORE_DRIVER     string
	LOG_DIR          string

	REDIS_HOST          string
	DASHBOARD_CACHE_TTL time.Duration

	KAFKA_BROKER                string
	WORKFLOW_TOPIC              string
	AWS_SNS_TOPIC_ARN           string
	AWS_SQS_NOTIFICATIONS_QUEUE string

	STRIPE_SECRET_KEY     string
	STRIPE_PAYMENT_METHOD string
	DEFAULT_CURRENCY      string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USERNAME string
	SMTP_PASSWORD string
	MAIL_FROM     string

	INTEGRITY_SWEEP_INTERVAL time.Duration
	STALE_PAYOUT_AFTER       time.Duration
)

// Load reads every setting from the environment. It runs once on init and can be
// called again after the environment changes.
func Load() {
	API_ENV = getEnv("API_ENV", "local")
	API_PORT = getEnv("API_PORT", "9090")
	APP_HOST = os.Getenv("APP_HOST")
	MAINTENANCE_MODE = getBool("MAINTENANCE_MODE", false)
	JWT_SECRET = os.Getenv("JWT_SECRET")
	STORE_DRIVER = getEnv("STORE_DRIVER", "postgres")
	LOG_DIR = os.Getenv("LOG_DIR")

	REDIS_HOST = os.Getenv("REDIS_HOST")
	DASHBOARD_CACHE_TTL = getDuration("DASHBOARD_CACHE_TTL", 30*time.Second)

	KAFKA_BROKER = os.Getenv("KAFKA_BROKER")
	WORKFLOW_TOPIC = getEnv("WORKFLOW_TOPIC", "workflow-events")
	AWS_SNS_TOPIC_ARN = os.Getenv("AWS_SNS_TOPIC_ARN")
	AWS_SQS_NOTIFICATIONS_QUEUE = os.Getenv("AWS_SQS_NOTIFICATIONS_QUEUE")

	STRIPE_SECRET_KEY = os.Getenv("STRIPE_SECRET_KEY")
	STRIPE_PAYMENT_METHOD = getEnv("STRIPE_PAYMENT_METHOD", "pm_card_visa")
	DEFAULT_CURRENCY = getEnv("DEFAULT_CURRENCY", "inr")

	SMTP_HOST = os.Getenv("SMTP_HOST")
	SMTP_PORT = getInt("SMTP_PORT", 587)
	SMTP_USERNAME = os.Getenv("SMTP_USERNAME")
	SMTP_PASSWORD = os.Getenv("SMTP_PASSWORD")
	MAIL_FROM = getEnv("MAIL_FROM", "no-reply@plannova.local")

	INTEGRITY_SWEEP_INTERVAL = getDuration("INTEGRITY_SWEEP_INTERVAL", 15*time.Minute)
	STALE_PAYOUT_AFTER = getDuration("STALE_PAYOUT_AFTER", 72*time.Hour)
}

func init() {
	Load()
}

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := getEnv("DATABASE_PORT", "5432")
	DATABASE_SSLMODE := getEnv("DATABASE_SSLMODE", "disable")
	DATABASE_TIMEZONE := getEnv("DATABASE_TIMEZONE", "UTC")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func IsLocal() bool {
	return API_ENV == "local"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

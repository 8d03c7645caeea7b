package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need at startup. Values come from the
// environment, optionally seeded from a .env file next to the working directory.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	KafkaBrokers    []string
	OrderEventTopic string
	ConsumerGroupID string

	DirectionsBaseURL string
	DirectionsAPIKey  string
	DirectionsTimeout time.Duration

	FCMEndpoint  string
	FCMServerKey string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
}

func Load() *Config {
	loadEnv()

	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "9000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("POSTGRES_USER", "postgres"),
		DBPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:     getEnv("POSTGRES_DB", "smokerider"),

		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		OrderEventTopic: getEnv("ORDER_EVENT_TOPIC", "orders.events"),
		ConsumerGroupID: getEnv("CONSUMER_GROUP_ID", "order-notifier-group"),

		DirectionsBaseURL: getEnv("DIRECTIONS_BASE_URL", "https://maps.googleapis.com/maps/api/directions/json"),
		DirectionsAPIKey:  os.Getenv("DIRECTIONS_API_KEY"),
		DirectionsTimeout: getEnvDuration("DIRECTIONS_TIMEOUT", 10*time.Second),

		FCMEndpoint:  getEnv("FCM_ENDPOINT", "https://fcm.googleapis.com/fcm/send"),
		FCMServerKey: os.Getenv("FCM_SERVER_KEY"),

		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 50),
		OutboxMaxAttempts:  getEnvInt("OUTBOX_MAX_ATTEMPTS", 5),
	}

	return cfg
}

// DatabaseDSN builds the postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("config: cannot resolve working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("config: loaded environment from %s", envPath)
			return
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid integer for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

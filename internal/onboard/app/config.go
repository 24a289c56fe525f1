package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer string // Required: issuer claim for access tokens

	DatabaseFile string // Optional: path to SQLite database file (default: ./onboard.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	InviteTTL     time.Duration // Optional: how long invite tokens stay redeemable (default: 24h)
	InviteBaseURL string        // Optional: public UI origin the set-password link points at

	MailMode string // Optional: invite delivery mode (smtp, log) (default: log)
	SMTPHost string // Optional: SMTP relay host
	SMTPPort int    // Optional: SMTP relay port (default: 587)
	MailFrom string // Optional: From address for invite mail

	AdminEmail    string // Optional: seed admin account email, created on startup if absent
	AdminPassword string // Optional: seed admin account password

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:               getEnvOrDefault("ONBOARD_ISSUER", "shiftline-onboard"),
		DatabaseFile:         getEnvOrDefault("ONBOARD_DATABASE_FILE", "onboard.db"),
		PepperFile:           getEnvOrDefault("ONBOARD_PEPPER_FILE", "pepper"),
		InviteTTL:            getEnvDurationOrDefault("INVITE_TTL", 24*time.Hour),
		InviteBaseURL:        getEnvOrDefault("INVITE_BASE_URL", "http://localhost:8080"),
		MailMode:             getEnvOrDefault("MAIL_MODE", "log"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getEnvIntOrDefault("SMTP_PORT", 587),
		MailFrom:             getEnvOrDefault("MAIL_FROM", "onboarding@shiftline.local"),
		AdminEmail:           os.Getenv("ONBOARD_ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ONBOARD_ADMIN_PASSWORD"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours for plain numeric values
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DatabaseURL string
	SQLitePath  string
	DBLog       bool

	SecretKey     string
	SessionTTL    time.Duration
	SecureCookies bool

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	UploadDir     string
	MaxUploadSize int64

	ExportEnabled  bool
	ExportPath     string
	ExportSchedule string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
}

// TwilioEnabled reports whether bill SMS receipts can be sent.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// Load reads a .env file when present and builds the configuration from
// the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		DatabaseURL:       normalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		SQLitePath:        getEnv("SQLITE_PATH", "local.db"),
		SecretKey:         os.Getenv("SECRET_KEY"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		ExportPath:        getEnv("EXPORT_PATH", "exports/customers.xlsx"),
		ExportSchedule:    strings.TrimSpace(os.Getenv("EXPORT_REBUILD_SCHEDULE")),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}

	var err error
	if cfg.DBLog, err = getBool("DB_LOG", false); err != nil {
		return nil, err
	}
	if cfg.SecureCookies, err = getBool("SECURE_COOKIES", false); err != nil {
		return nil, err
	}
	if cfg.ExportEnabled, err = getBool("EXPORT_ENABLED", true); err != nil {
		return nil, err
	}

	hours, err := strconv.Atoi(getEnv("SESSION_HOURS", "12"))
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("invalid SESSION_HOURS: %q", os.Getenv("SESSION_HOURS"))
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour

	size, err := units.FromHumanSize(getEnv("MAX_UPLOAD_SIZE", "20MB"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	cfg.MaxUploadSize = size

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

// Hosting providers still hand out postgres:// URLs.
func normalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

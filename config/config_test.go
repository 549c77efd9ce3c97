package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "DATABASE_URL", "SQLITE_PATH", "DB_LOG", "SECRET_KEY",
	"SESSION_HOURS", "SECURE_COOKIES", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	"ADMIN_PASSWORD_HASH", "UPLOAD_DIR", "MAX_UPLOAD_SIZE", "EXPORT_ENABLED",
	"EXPORT_PATH", "EXPORT_REBUILD_SCHEDULE", "TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "changeme")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local.db", cfg.SQLitePath)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(20_000_000), cfg.MaxUploadSize)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.True(t, cfg.ExportEnabled)
	assert.Equal(t, "exports/customers.xlsx", cfg.ExportPath)
	assert.False(t, cfg.DBLog)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.TwilioEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/cafe")
	t.Setenv("SESSION_HOURS", "2")
	t.Setenv("MAX_UPLOAD_SIZE", "5MB")
	t.Setenv("EXPORT_ENABLED", "false")
	t.Setenv("EXPORT_REBUILD_SCHEDULE", " @hourly ")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgresql://u:p@db:5432/cafe", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5_000_000), cfg.MaxUploadSize)
	assert.False(t, cfg.ExportEnabled)
	assert.Equal(t, "@hourly", cfg.ExportSchedule)
	assert.True(t, cfg.SecureCookies)
	assert.True(t, cfg.TwilioEnabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no admin password", map[string]string{}},
		{"bad session hours", map[string]string{"ADMIN_PASSWORD": "x", "SESSION_HOURS": "soon"}},
		{"zero session hours", map[string]string{"ADMIN_PASSWORD": "x", "SESSION_HOURS": "0"}},
		{"bad upload size", map[string]string{"ADMIN_PASSWORD": "x", "MAX_UPLOAD_SIZE": "huge"}},
		{"bad bool", map[string]string{"ADMIN_PASSWORD": "x", "DB_LOG": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

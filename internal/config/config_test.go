package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_USER_ID", "42")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.AllowedUserID)
	assert.Equal(t, BackendSheets, cfg.StoreBackend)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "https://r.jina.ai/", cfg.ReaderBaseURL)
	assert.Equal(t, 5000, cfg.AIInputLimit)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []int{3, 1, 0}, cfg.Reminder.Days)
	assert.Equal(t, 8, cfg.Reminder.Hour)
	assert.Equal(t, 0, cfg.Reminder.Minute)
	assert.Equal(t, "Asia/Dhaka", cfg.Reminder.Location.String())
	assert.Equal(t, "0 8 * * *", cfg.Reminder.CronSpec())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs")
	t.Setenv("REQUEST_TIMEOUT", "10s")
	t.Setenv("USER_TIMEZONE", "UTC")
	t.Setenv("REMINDER_DAYS", "7, 3,3,0")
	t.Setenv("REMINDER_TIME", "09:30")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []int{7, 3, 0}, cfg.Reminder.Days)
	assert.Equal(t, "30 9 * * *", cfg.Reminder.CronSpec())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.SheetURL())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_USER_ID", "42")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_USER_ID", "not-a-number")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)

	for key, value := range map[string]string{
		"REQUEST_TIMEOUT": "soon",
		"USER_TIMEZONE":   "Mars/Olympus",
		"REMINDER_DAYS":   "3,-1",
		"REMINDER_TIME":   "25:00",
		"REDIS_DB":        "x",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateSheetsBackend(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Error(t, cfg.Validate(), "sheet id missing")

	cfg.SheetID = "sheet-123"
	cfg.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, cfg.Validate(), "credentials missing")

	creds := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(creds, []byte("{}"), 0o600))
	cfg.CredentialsFile = creds
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-123", cfg.SheetURL())

	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("3,1,0")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 0}, days)

	_, err = ParseDays(" , ")
	assert.Error(t, err)
}

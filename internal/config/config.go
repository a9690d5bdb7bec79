package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

type Config struct {
	// Telegram
	TelegramToken string
	AllowedUserID int64

	// Record store
	StoreBackend    string
	SheetID         string
	CredentialsFile string
	PostgresDSN     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	// External APIs
	ReaderBaseURL  string
	ReaderAPIKey   string
	GeminiAPIKey   string
	GeminiModel    string
	AIInputLimit   int
	RequestTimeout time.Duration

	Reminder Reminder

	// Logging
	LogLevel string
}

// Reminder holds the daily reminder schedule.
type Reminder struct {
	Days     []int
	Hour     int
	Minute   int
	Location *time.Location
}

func Load() (*Config, error) {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		StoreBackend:    BackendSheets,
		CredentialsFile: "credentials.json",
		ReaderBaseURL:   "https://r.jina.ai/",
		GeminiModel:     "gemini-2.5-flash",
		AIInputLimit:    5000,
		RequestTimeout:  30 * time.Second,
		Reminder: Reminder{
			Days: []int{3, 1, 0},
			Hour: 8,
		},
		LogLevel: "info",
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	userID := os.Getenv("TELEGRAM_USER_ID")
	if userID == "" {
		return nil, fmt.Errorf("TELEGRAM_USER_ID is required")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(userID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_USER_ID: %w", err)
	}
	cfg.AllowedUserID = id

	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		cfg.StoreBackend = strings.ToLower(backend)
	}

	cfg.SheetID = os.Getenv("GOOGLE_SHEET_ID")
	if creds := os.Getenv("GOOGLE_SHEETS_CREDENTIALS"); creds != "" {
		cfg.CredentialsFile = creds
	}
	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if baseURL := os.Getenv("READER_BASE_URL"); baseURL != "" {
		cfg.ReaderBaseURL = baseURL
	}
	cfg.ReaderAPIKey = os.Getenv("READER_API_KEY")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	if limit := os.Getenv("AI_INPUT_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid AI_INPUT_LIMIT: %w", err)
		}
		cfg.AIInputLimit = n
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	tz := os.Getenv("USER_TIMEZONE")
	if tz == "" {
		tz = "Asia/Dhaka"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid USER_TIMEZONE: %w", err)
	}
	cfg.Reminder.Location = loc

	if days := os.Getenv("REMINDER_DAYS"); days != "" {
		parsed, err := ParseDays(days)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
		}
		cfg.Reminder.Days = parsed
	}

	if at := os.Getenv("REMINDER_TIME"); at != "" {
		hour, minute, err := ParseClock(at)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_TIME: %w", err)
		}
		cfg.Reminder.Hour = hour
		cfg.Reminder.Minute = minute
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = strings.ToLower(logLevel)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.AllowedUserID == 0 {
		return fmt.Errorf("allowed user id is empty")
	}

	switch c.StoreBackend {
	case BackendSheets:
		if c.SheetID == "" {
			return fmt.Errorf("google sheet id is empty")
		}
		if _, err := os.Stat(c.CredentialsFile); err != nil {
			return fmt.Errorf("google credentials file: %w", err)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres DSN is empty")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}

	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout too small: %v", c.RequestTimeout)
	}

	if c.AIInputLimit < 100 {
		return fmt.Errorf("AI input limit too small: %d", c.AIInputLimit)
	}

	if len(c.Reminder.Days) == 0 {
		return fmt.Errorf("reminder days are empty")
	}

	if c.Reminder.Location == nil {
		return fmt.Errorf("reminder location is not set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// SheetURL is the browser link to the spreadsheet, empty for other backends.
func (c *Config) SheetURL() string {
	if c.StoreBackend != BackendSheets || c.SheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + c.SheetID
}

// CronSpec renders the reminder time as a daily cron expression.
func (r Reminder) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", r.Minute, r.Hour)
}

// ParseDays parses a comma separated list like "3,1,0".
func ParseDays(s string) ([]int, error) {
	var days []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative day: %d", n)
		}
		if !seen[n] {
			seen[n] = true
			days = append(days, n)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days in %q", s)
	}
	return days, nil
}

// ParseClock parses "HH:MM" in 24h format.
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

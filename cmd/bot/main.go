package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"job-deadline-bot/internal/api/reader"
	"job-deadline-bot/internal/bot"
	"job-deadline-bot/internal/bot/middleware"
	"job-deadline-bot/internal/bot/scheduler"
	"job-deadline-bot/internal/config"
	"job-deadline-bot/internal/extractor"
	"job-deadline-bot/internal/logger"
	"job-deadline-bot/internal/scraper"
	"job-deadline-bot/internal/storage/postgres"
	"job-deadline-bot/internal/storage/redis"
	"job-deadline-bot/internal/storage/sheets"
	"job-deadline-bot/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job deadline bot",
		zap.String("log_level", cfg.LogLevel),
		zap.String("store", cfg.StoreBackend),
		zap.String("reminder_cron", cfg.Reminder.CronSpec()),
		zap.String("timezone", cfg.Reminder.Location.String()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc := cfg.Reminder.Location

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open record store", zap.Error(err))
	}
	defer closeStore()

	initCtx, initCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	err = store.Init(initCtx)
	initCancel()
	if err != nil {
		log.Fatal("failed to initialize record store", zap.Error(err))
	}

	log.Info("record store ready")

	fetcher := scraper.NewChain(log,
		scraper.NewReaderStrategy(reader.New(cfg.ReaderBaseURL, cfg.ReaderAPIKey, cfg.RequestTimeout, log)),
		scraper.NewHTMLStrategy(cfg.RequestTimeout, log),
	)

	var limiter middleware.Limiter = middleware.NewLocalLimiter(middleware.MaxRequestsPerMinute)

	if cfg.RedisAddr != "" {
		log.Info("connecting to Redis...")
		cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("Redis unavailable, page cache disabled", zap.Error(err))
		} else {
			defer cache.Close()
			fetcher = fetcher.WithCache(cache)
			limiter = middleware.NewRedisLimiter(cache, middleware.MaxRequestsPerMinute)
		}
	}

	var model llms.Model
	if cfg.GeminiAPIKey != "" {
		gemini, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
		if err != nil {
			log.Warn("failed to create Gemini client, AI extraction disabled", zap.Error(err))
		} else {
			model = gemini
			log.Info("AI extraction enabled", zap.String("model", cfg.GeminiModel))
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, AI extraction disabled")
	}

	ext := extractor.New(log,
		extractor.NewRegexStrategy(loc, time.Now, log),
		extractor.NewAIStrategy(model, cfg.AIInputLimit, loc, log),
	)

	svc := tracker.New(fetcher, ext, store, loc, time.Now, log)

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, svc, limiter, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting reminder checker...")
	checker := scheduler.New(tgBot.GetBot(), store, cfg, log)

	go func() {
		if err := checker.Start(ctx); err != nil {
			log.Error("reminder checker failed", zap.Error(err))
		}
	}()

	log.Info("bot is running...")
	log.Info("press Ctrl+C to stop")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (tracker.Store, func(), error) {
	loc := cfg.Reminder.Location

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		log.Info("connecting to PostgreSQL...")
		store, err := postgres.New(cfg.PostgresDSN, loc, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		log.Info("connecting to Google Sheets...")
		store, err := sheets.New(ctx, cfg.CredentialsFile, cfg.SheetID, loc, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

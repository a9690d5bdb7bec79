package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/handlers"
	"job-deadline-bot/internal/bot/middleware"
	"job-deadline-bot/internal/config"
)

// Bot represents Telegram bot
type Bot struct {
	bot     *tele.Bot
	tracker handlers.JobTracker
	limiter middleware.Limiter
	config  *config.Config
	logger  *zap.Logger
}

func New(
	cfg *config.Config,
	tracker handlers.JobTracker,
	limiter middleware.Limiter,
	logger *zap.Logger,
) (*Bot, error) {
	onError := func(err error, c tele.Context) {
		logger.Error("telegram handler error", zap.Error(err))
	}

	pref := tele.Settings{
		Token:   cfg.TelegramToken,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: onError,
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		tracker: tracker,
		limiter: limiter,
		config:  cfg,
		logger:  logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.Private(b.config.AllowedUserID, b.logger))

	b.bot.Use(middleware.RateLimit(b.limiter, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Tracker: b.tracker,
		Config:  b.config,
		Logger:  b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/list", handlers.HandleList(ctx))
	b.bot.Handle("/applied", handlers.HandleApplied(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}

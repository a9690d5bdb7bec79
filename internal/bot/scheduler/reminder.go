package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
	"job-deadline-bot/internal/config"
	"job-deadline-bot/internal/models"
)

// Notifier delivers messages, *tele.Bot satisfies it.
type Notifier interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Lister returns every stored record with a fresh index.
type Lister interface {
	ListAll(ctx context.Context) ([]*models.JobRecord, error)
}

type ReminderChecker struct {
	notifier Notifier
	store    Lister
	ownerID  int64
	schedule config.Reminder
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func New(
	notifier Notifier,
	store Lister,
	cfg *config.Config,
	logger *zap.Logger,
) *ReminderChecker {
	return &ReminderChecker{
		notifier: notifier,
		store:    store,
		ownerID:  cfg.AllowedUserID,
		schedule: cfg.Reminder,
		timeout:  cfg.RequestTimeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the daily check until ctx is cancelled.
func (rc *ReminderChecker) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(rc.schedule.Location))

	spec := rc.schedule.CronSpec()
	if _, err := c.AddFunc(spec, func() { rc.RunOnce(ctx, rc.now()) }); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}

	c.Start()

	rc.logger.Info("reminder checker started",
		zap.String("cron", spec),
		zap.String("timezone", rc.schedule.Location.String()),
		zap.Ints("days", rc.schedule.Days),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	rc.logger.Info("reminder checker stopped")

	return nil
}

// RunOnce sends a reminder for every open record whose deadline is exactly
// one of the configured days away and returns how many were delivered.
func (rc *ReminderChecker) RunOnce(ctx context.Context, now time.Time) int {
	rc.logger.Info("starting deadline check")

	listCtx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	records, err := rc.store.ListAll(listCtx)
	if err != nil {
		rc.logger.Error("failed to load jobs for reminders", zap.Error(err))
		return 0
	}

	recipient := &tele.User{ID: rc.ownerID}
	sent := 0

	for _, rec := range records {
		if rec.IsApplied() {
			continue
		}

		days, ok := rec.DaysLeft(now)
		if !ok || days < 0 || !rc.isReminderDay(days) {
			continue
		}

		message := utils.FormatReminder(rec, days)
		keyboard := utils.ReminderKeyboard(rec)

		if _, err := rc.notifier.Send(recipient, message, keyboard, tele.ModeMarkdownV2); err != nil {
			rc.logger.Error("failed to send reminder",
				zap.Int("index", rec.Index),
				zap.String("company", rec.Company),
				zap.Error(err),
			)
			continue
		}

		sent++
	}

	rc.logger.Info("finished deadline check",
		zap.Int("jobs", len(records)),
		zap.Int("reminders", sent),
	)

	return sent
}

func (rc *ReminderChecker) isReminderDay(days int) bool {
	for _, d := range rc.schedule.Days {
		if d == days {
			return true
		}
	}
	return false
}

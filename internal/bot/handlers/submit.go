package handlers

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
	"job-deadline-bot/internal/scraper"
	"job-deadline-bot/internal/tracker"
)

// HandleText treats any non-command message as a job submission.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())

		if strings.HasPrefix(text, "/") {
			return c.Send("Unknown command. See /help.")
		}

		_ = c.Notify(tele.Typing)

		reqCtx, cancel := ctx.submitContext()
		defer cancel()

		sub, err := ctx.Tracker.Submit(reqCtx, text)
		switch {
		case errors.Is(err, tracker.ErrNoJobPosting):
			return c.Send(utils.FormatNoJobPostingMessage(), tele.ModeMarkdownV2, tele.NoPreview)
		case errors.Is(err, scraper.ErrFetchFailed):
			ctx.Logger.Warn("could not fetch posting", zap.Error(err))
			return c.Send(utils.FormatFetchFailedMessage(), tele.ModeMarkdownV2)
		case err != nil:
			ctx.Logger.Error("failed to submit job", zap.Error(err))
			return c.Send("❌ Failed to save the job. Please try again.")
		}

		message := utils.FormatJobAdded(sub.Record, sub.Missing, ctx.Tracker.Now())

		return sendMarkdown(c, message, utils.SheetKeyboard(ctx.Config.SheetURL()))
	}
}

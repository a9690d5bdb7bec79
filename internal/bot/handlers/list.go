package handlers

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
)

// /list
func HandleList(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return sendList(ctx, c)
	}
}

func sendList(ctx *Context, c tele.Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	records, err := ctx.Tracker.List(reqCtx)
	if err != nil {
		ctx.Logger.Error("failed to list jobs", zap.Error(err))
		return c.Send("❌ Failed to load your jobs. Please try again.")
	}

	message := utils.FormatDeadlineList(records, ctx.Tracker.Now())

	return sendMarkdown(c, message, utils.SheetKeyboard(ctx.Config.SheetURL()))
}

// sendMarkdown splits long messages and attaches markup to the last part.
func sendMarkdown(c tele.Context, message string, markup *tele.ReplyMarkup) error {
	chunks := utils.SplitMessage(message, utils.MaxMessageLength)

	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeMarkdownV2, tele.NoPreview}
		if i == len(chunks)-1 && markup != nil {
			opts = append(opts, markup)
		}

		if err := c.Send(chunk, opts...); err != nil {
			return err
		}
	}

	return nil
}

package handlers

import (
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
)

// /help
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(
			utils.FormatHelpMessage(),
			tele.ModeMarkdownV2,
			tele.NoPreview,
		)
	}
}

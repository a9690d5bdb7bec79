package handlers

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		user := c.Sender()

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", user.ID),
			zap.String("username", user.Username),
		)

		return c.Send(
			utils.FormatWelcomeMessage(user.FirstName),
			tele.ModeMarkdownV2,
			tele.NoPreview,
		)
	}
}

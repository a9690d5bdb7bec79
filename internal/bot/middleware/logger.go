package middleware

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// pasted job descriptions can be long
const maxLoggedText = 200

// Logger middleware for logging all incoming msgs
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var userID int64
			if user := c.Sender(); user != nil {
				userID = user.ID
			}

			var text, updateType string

			if message := c.Message(); message != nil {
				text = message.Text
				updateType = "text"
				if strings.HasPrefix(text, "/") {
					updateType = "command"
				}
			}

			if callback := c.Callback(); callback != nil {
				text = strings.TrimPrefix(callback.Data, "\f")
				updateType = "callback"
			}

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("type", updateType),
				zap.String("text", shorten(text)),
				zap.Int("length", utf8.RuneCountInString(text)),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("handler error", fields...)
			} else {
				logger.Info("request handled", fields...)
			}

			return err
		}
	}
}

func shorten(s string) string {
	if utf8.RuneCountInString(s) <= maxLoggedText {
		return s
	}
	return string([]rune(s)[:maxLoggedText]) + "…"
}

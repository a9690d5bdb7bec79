package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const PrivateBotMessage = "Sorry, this bot is private."

// Private lets only the owner through. Everybody else gets a fixed reply
// and the update stops here.
func Private(ownerID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user != nil && user.ID == ownerID {
				return next(c)
			}

			var userID int64
			if user != nil {
				userID = user.ID
			}
			logger.Warn("rejected update from unauthorized user", zap.Int64("user_id", userID))

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: PrivateBotMessage})
			}
			if user == nil {
				return nil
			}
			return c.Send(PrivateBotMessage)
		}
	}
}

package handlers

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/bot/utils"
)

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		// telebot prefixes unique callbacks with \f
		data := strings.TrimPrefix(cb.Data, "\f")
		parts := strings.Split(data, "|")

		ctx.Logger.Debug("routing callback", zap.Strings("parts", parts))

		switch parts[0] {
		case utils.CallbackListAll:
			_ = c.Respond()
			return sendList(ctx, c)
		case utils.CallbackApplied:
			return handleAppliedCallback(ctx, c, parts)
		default:
			ctx.Logger.Warn("unknown callback action", zap.String("data", data))
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}

func handleAppliedCallback(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid button"})
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid button"})
	}

	reply := markApplied(ctx, index)

	if err := c.Respond(&tele.CallbackResponse{Text: reply}); err != nil {
		ctx.Logger.Warn("failed to answer callback", zap.Error(err))
	}

	return c.Send(reply)
}

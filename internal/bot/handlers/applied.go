package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/models"
)

var jobNumber = regexp.MustCompile(`\d+`)

// /applied <n>
func HandleApplied(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Please specify a job number. Example: /applied 1")
		}

		index, ok := parseJobNumber(args[0])
		if !ok {
			return c.Send("Invalid job number. Use the number shown in /list.")
		}

		return c.Send(markApplied(ctx, index))
	}
}

// markApplied returns the reply text for every outcome.
func markApplied(ctx *Context, index int) string {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	changed, err := ctx.Tracker.MarkApplied(reqCtx, index)
	switch {
	case errors.Is(err, models.ErrJobNotFound):
		return fmt.Sprintf("❌ There is no job #%d. Check the numbers with /list.", index)
	case err != nil:
		ctx.Logger.Error("failed to mark job applied",
			zap.Int("index", index),
			zap.Error(err),
		)
		return "❌ Failed to update the job. Please try again."
	case !changed:
		return fmt.Sprintf("Job #%d is already marked as applied.", index)
	default:
		return fmt.Sprintf("✅ Job #%d marked as applied!", index)
	}
}

func parseJobNumber(s string) (int, bool) {
	m := jobNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

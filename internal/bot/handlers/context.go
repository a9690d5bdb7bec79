package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"job-deadline-bot/internal/config"
	"job-deadline-bot/internal/models"
	"job-deadline-bot/internal/tracker"
)

// JobTracker is what the handlers need from the tracker service.
type JobTracker interface {
	Submit(ctx context.Context, text string) (*tracker.Submission, error)
	List(ctx context.Context) ([]*models.JobRecord, error)
	MarkApplied(ctx context.Context, index int) (bool, error)
	Now() time.Time
}

// Context contains deps for all handlers
type Context struct {
	Tracker JobTracker
	Config  *config.Config
	Logger  *zap.Logger
}

// submitting may hit both fetch strategies, the AI model and the store
const submitTimeoutFactor = 4

func (ctx *Context) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ctx.Config.RequestTimeout)
}

func (ctx *Context) submitContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), submitTimeoutFactor*ctx.Config.RequestTimeout)
}

package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

const (
	MaxRequestsPerMinute = 30
)

type Limiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

type rateCounter interface {
	IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error)
}

// RedisLimiter counts requests per user in a one minute window kept in
// Redis, so the limit survives restarts.
type RedisLimiter struct {
	counter rateCounter
	max     int64
}

func NewRedisLimiter(counter rateCounter, maxPerMinute int) *RedisLimiter {
	return &RedisLimiter{counter: counter, max: int64(maxPerMinute)}
}

func (l *RedisLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	count, err := l.counter.IncrementUserRateLimit(ctx, userID)
	if err != nil {
		return true, err
	}
	return count <= l.max, nil
}

// LocalLimiter is an in-process token bucket per user.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewLocalLimiter(maxPerMinute int) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(maxPerMinute)),
		burst:    maxPerMinute,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, userID int64) (bool, error) {
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()

	return lim.Allow(), nil
}

func RateLimit(limiter Limiter, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			allowed, err := limiter.Allow(ctx, user.ID)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return next(c)
			}

			if !allowed {
				logger.Warn("rate limit exceeded", zap.Int64("user_id", user.ID))

				return c.Send(fmt.Sprintf(
					"⚠️ Too many requests. Please wait a minute.\n"+
						"Limit: %d requests per minute.",
					MaxRequestsPerMinute,
				))
			}

			return next(c)
		}
	}
}

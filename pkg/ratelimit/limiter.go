package ratelimit

import (
	"fmt"
	"time"

	"ai-faq-generator-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request limiter backed by Redis. It protects
// the generation endpoints from bursts before the credit ledger is even
// consulted. When Redis is unreachable the limiter lets requests through;
// the ledger still enforces the daily cap.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func New(redisURL string, limit int, window time.Duration) (*Limiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &Limiter{
		rdb:    redis.NewClient(opts),
		limit:  limit,
		window: window,
	}, nil
}

// NewWithClient wraps an already configured client.
func NewWithClient(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

func (l *Limiter) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		subject, _ := ctx.Locals("user_id").(string)
		if subject == "" {
			subject = ctx.IP()
		}
		key := fmt.Sprintf("rl:faq:%s", subject)

		count, err := l.rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			l.rdb.Expire(ctx.Context(), key, l.window)
		}
		if count > int64(l.limit) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				serverutils.NewTypedErrorResponse(429, "too many requests, slow down", "rate_limited"))
		}
		return ctx.Next()
	}
}

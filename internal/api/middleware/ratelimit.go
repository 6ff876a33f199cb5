package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oneride/ride-gateway/internal/api/dto"
	"github.com/oneride/ride-gateway/pkg/cache"
	"github.com/oneride/ride-gateway/pkg/errors"
	"github.com/oneride/ride-gateway/pkg/logger"
)

// counterFunc increments the window counter behind a key and reports the new
// count.
type counterFunc func(ctx context.Context, key string, window time.Duration) (int64, error)

// RateLimit enforces a fixed-window per-IP budget backed by Redis. The scope
// keeps independent counters per route group. Redis trouble fails open: the
// gateway keeps serving rather than blocking rides on a counter store.
func RateLimit(client *redis.Client, log *logger.Logger, perMinute int, scope string) gin.HandlerFunc {
	counter := func(ctx context.Context, key string, window time.Duration) (int64, error) {
		return cache.CountWindow(ctx, client, key, window)
	}
	return rateLimitWith(counter, log, perMinute, scope)
}

func rateLimitWith(counter counterFunc, log *logger.Logger, perMinute int, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := counter(c.Request.Context(), key, time.Minute)
		if err != nil {
			log.Warn("rate limit check failed",
				logger.String("scope", scope),
				logger.Err(err),
			)
			c.Next()
			return
		}

		if count > int64(perMinute) {
			appErr := errors.ErrRateLimitExceeded
			c.AbortWithStatusJSON(appErr.Status, dto.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
			})
			return
		}
		c.Next()
	}
}

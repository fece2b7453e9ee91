package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// KindRateLimited is the errorKind reported when a caller exceeds its request budget.
const KindRateLimited = "RateLimited"

// RateLimit throttles requests per client IP within scope. Separate scopes (the whole API,
// the login endpoint) keep independent budgets even when they share a limiter store.
func RateLimit(scope string, l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		ip := c.ClientIP()

		lc, err := l.Get(c.Request.Context(), scope+":"+ip)
		if err != nil {
			// fail open when the store is unavailable
			logger.Error("Rate limit check failed", slog.String("scope", scope), slog.String("ip", ip), slog.String("error", err.Error()))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

		if lc.Reached {
			logger.Warn("Rate limit exceeded", slog.String("scope", scope), slog.String("ip", ip), slog.Int64("limit", lc.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests, retry later",
				"errorKind": KindRateLimited,
			})
			return
		}

		c.Next()
	}
}

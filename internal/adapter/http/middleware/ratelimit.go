package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisStore "payment-portal/internal/adapter/storage/redis"
	"payment-portal/pkg/apperror"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rate limit groups.
const (
	GroupSignup   = "auth_signup"
	GroupLogin    = "auth_login"
	GroupQRUpload = "qr_upload"
	GroupPortal   = "portal"
	GroupTransfer = "portal_transfer"
)

// Limiter counts requests against a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

var _ Limiter = (*redisStore.RateLimitStore)(nil)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the limits applied per endpoint group.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupSignup:   {Limit: 5, Window: time.Hour},
		GroupLogin:    {Limit: 10, Window: time.Minute},
		GroupQRUpload: {Limit: 20, Window: time.Minute},
		GroupPortal:   {Limit: 120, Window: time.Minute},
		GroupTransfer: {Limit: 30, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// When the store is unreachable requests are let through.
func RateLimiter(store Limiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", group, identifier(c))

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := max(result.ResetAt-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// identifier keys authenticated traffic by user and everything else by IP.
func identifier(c *gin.Context) string {
	if session, ok := SessionFrom(c); ok {
		return "user:" + session.Key()
	}
	return "ip:" + c.ClientIP()
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"streetside/internal/infrastructure/ratelimit"
	"streetside/internal/shared/authorization"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/utils"
)

// SessionStartLimiter throttles session starts per vendor using the shared
// sliding-window limiter. Keys are vendor SIDs, so the limit follows the
// vendor across instances and IPs.
type SessionStartLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.LimitConfig
	logger  logger.Interface
}

func NewSessionStartLimiter(limiter ratelimit.RateLimiter, config ratelimit.LimitConfig, logger logger.Interface) *SessionStartLimiter {
	return &SessionStartLimiter{
		limiter: limiter,
		config:  config,
		logger:  logger,
	}
}

// Limit enforces the per-vendor session start budget. Requests without an
// authenticated actor pass through; the auth middleware rejects those first.
func (l *SessionStartLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limiter == nil {
			c.Next()
			return
		}

		actorSID := c.GetString(authorization.ContextKeyActorSID)
		if actorSID == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:session_start", actorSID)
		allowed, err := l.limiter.Allow(key, l.config)
		if err != nil {
			// Fail open so a limiter outage does not take sessions down with it.
			l.logger.Warnw("rate limiter unavailable, allowing request",
				"actor_id", actorSID,
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many session starts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

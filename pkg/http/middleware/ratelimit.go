package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Allower is the token-bucket decision the rate limit middleware
// delegates to.
type Allower interface {
	Allow(key string, capacity, refillPerSec float64) bool
}

// RateLimit rejects requests whose client IP has drained its bucket.
// Keys are the Echo real IP, so a proxy setup must configure trusted
// forward headers upstream.
func RateLimit(limiter Allower, capacity, refillPerSec float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter != nil && !limiter.Allow(c.RealIP(), capacity, refillPerSec) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": "Too Many Requests",
				})
			}
			return next(c)
		}
	}
}

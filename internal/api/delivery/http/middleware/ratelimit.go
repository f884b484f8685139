package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimiter limits each client IP to the configured number of requests per
// minute.
func RateLimiter(requestsPerMinute int) echo.MiddlewareFunc {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(requestsPerMinute) / 60.0),
			Burst:     requestsPerMinute,
			ExpiresIn: 3 * time.Minute,
		}),
	})
}

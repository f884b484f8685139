package middleware

import (
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLogger logs one structured line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				logger.Field("method", v.Method),
				logger.Field("uri", v.URI),
				logger.Field("status", v.Status),
				logger.Field("latency", v.Latency.String()),
			)
			return nil
		},
	})
}

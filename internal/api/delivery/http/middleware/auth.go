package middleware

import (
	"net/http"
	"strings"

	"brvm-market-api/internal/api/service"
	"brvm-market-api/internal/entity"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
)

const currentUserKey = "current_user"

// RequireAuth resolves the caller from the bearer token and stores it in the
// request context. Requests without a valid access token get a 401.
func RequireAuth(authService service.AuthService, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing or invalid authorization header"})
			}

			user, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				log.Debug("Authentication failed", logger.ErrorField(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Could not validate credentials"})
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(currentUserKey).(*entity.User)
	return user
}

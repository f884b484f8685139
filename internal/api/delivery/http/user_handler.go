package http

import (
	"net/http"

	"brvm-market-api/internal/api/delivery/http/middleware"
	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/service"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests for user preferences.
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// RegisterRoutes registers the user routes to the Echo group.
func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/preferences", h.GetPreferences)
	g.PUT("/preferences", h.UpdatePreferences)
	g.POST("/preferences/reset", h.ResetPreferences)
}

// GetPreferences godoc
// @Summary Get preferences
// @Description Preferences of the current user, created with defaults on first access
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserPreferencesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/preferences [get]
func (h *UserHandler) GetPreferences(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Could not validate credentials"})
	}

	prefs, err := h.userService.GetPreferences(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get preferences"})
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary Update preferences
// @Description Partial update of the current user's preferences
// @Tags users
// @Accept  json
// @Produce  json
// @Param   preferences body    dto.UpdatePreferencesRequest    true    "Fields to update"
// @Success 200 {object} dto.UserPreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Could not validate credentials"})
	}

	var req dto.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	prefs, err := h.userService.UpdatePreferences(c.Request().Context(), user.ID, &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update preferences"})
	}
	return c.JSON(http.StatusOK, prefs)
}

// ResetPreferences godoc
// @Summary Reset preferences
// @Description Restore the current user's preferences to defaults
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserPreferencesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/preferences/reset [post]
func (h *UserHandler) ResetPreferences(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Could not validate credentials"})
	}

	prefs, err := h.userService.ResetPreferences(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset preferences"})
	}
	return c.JSON(http.StatusOK, prefs)
}

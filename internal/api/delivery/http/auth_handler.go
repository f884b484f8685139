package http

import (
	"errors"
	"net/http"

	"brvm-market-api/internal/api/delivery/http/middleware"
	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/service"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers the public auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

// RegisterProtectedRoutes registers auth routes that require a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
}

// Register godoc
// @Summary Register
// @Description Create a new user account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user    body    dto.RegisterRequest true    "Account to create"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "This email is already used"})
		}
		h.logger.Error("Failed to register user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to register"})
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login
// @Description Exchange credentials for a token pair
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body    dto.LoginRequest    true    "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Incorrect email or password"})
		}
		h.logger.Error("Failed to login", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to login"})
	}
	return c.JSON(http.StatusOK, tokens)
}

// Refresh godoc
// @Summary Refresh token
// @Description Exchange a refresh token for a new access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token   body    dto.RefreshRequest  true    "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
		}
		h.logger.Error("Failed to refresh token", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh token"})
	}
	return c.JSON(http.StatusOK, tokens)
}

// Me godoc
// @Summary Current user
// @Description The account behind the bearer token
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Could not validate credentials"})
	}
	return c.JSON(http.StatusOK, dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	})
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/service"
	"brvm-market-api/internal/entity"
	"brvm-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	user *entity.User
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	return nil, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	return nil, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "valid-token" && m.user != nil {
		return m.user, nil
	}
	return nil, service.ErrInvalidToken
}

func requireAuthTest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *entity.User) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	authenticated := &entity.User{ID: uuid.New(), Email: "test@example.com", IsActive: true}
	mw := RequireAuth(&mockAuthService{user: authenticated}, log)

	var seen *entity.User
	handler := mw(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec, seen
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, seen := requireAuthTest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	rec, seen := requireAuthTest(t, "Token valid-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	rec, seen := requireAuthTest(t, "Bearer expired-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	rec, seen := requireAuthTest(t, "Bearer valid-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "test@example.com", seen.Email)
}

func TestCurrentUser_NilWithoutAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}

package service

import (
	"context"
	"testing"
	"time"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/entity"
	"brvm-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	usersByEmail map[string]*entity.User
	usersByID    map[uuid.UUID]*entity.User
	prefs        map[uuid.UUID]*entity.UserPreferences
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByEmail: make(map[string]*entity.User),
		usersByID:    make(map[uuid.UUID]*entity.User),
		prefs:        make(map[uuid.UUID]*entity.UserPreferences),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := m.usersByID[id]
	if !ok || !user.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error) {
	prefs, ok := m.prefs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return prefs, nil
}

func (m *mockUserRepo) SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	m.prefs[prefs.UserID] = prefs
	return nil
}

func (m *mockUserRepo) DeletePreferences(ctx context.Context, userID uuid.UUID) error {
	delete(m.prefs, userID)
	return nil
}

func newTestAuthService(repo *mockUserRepo) *authService {
	log, _ := logger.New("error", "json")
	return &authService{
		userRepo:   repo,
		secret:     []byte("test-secret"),
		accessTTL:  time.Hour,
		refreshTTL: 24 * time.Hour,
		logger:     log,
		now:        time.Now,
	}
}

func registerTestUser(t *testing.T, svc *authService) *dto.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "test@example.com",
		Password:  "testpassword123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_DefaultsAndHash(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	user := registerTestUser(t, svc)
	assert.Equal(t, "retail", user.UserType)
	assert.True(t, user.IsActive)

	stored := repo.usersByEmail["test@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "testpassword123", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), "test@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registered := registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	repo.usersByEmail["test@example.com"].IsActive = false

	_, err = svc.Authenticate(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken)

	_, err = svc.Authenticate(context.Background(), refreshed.AccessToken)
	assert.NoError(t, err)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	registerTestUser(t, svc)

	// Issue tokens in the past so they are already expired.
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tokens, err := svc.Login(context.Background(), "test@example.com", "testpassword123")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Authenticate(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package service

import (
	"context"
	"testing"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo *mockUserRepo) UserService {
	log, _ := logger.New("error", "json")
	return NewUserService(repo, log)
}

func TestGetPreferences_CreatesDefaultsOnFirstAccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)
	userID := uuid.New()

	prefs, err := svc.GetPreferences(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, "fr", prefs.Language)
	assert.Equal(t, "XOF", prefs.Currency)
	assert.Equal(t, "1M", prefs.DefaultChartPeriod)
	assert.Equal(t, "moderate", prefs.RiskProfile)
	assert.Empty(t, prefs.FavoriteSectors)

	// The defaults are persisted.
	_, ok := repo.prefs[userID]
	assert.True(t, ok)
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)
	userID := uuid.New()

	theme := "dark"
	sectors := []string{"Banking", "Telecom"}
	prefs, err := svc.UpdatePreferences(context.Background(), userID, &dto.UpdatePreferencesRequest{
		Theme:           &theme,
		FavoriteSectors: &sectors,
	})
	require.NoError(t, err)

	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, []string{"Banking", "Telecom"}, prefs.FavoriteSectors)
	// Untouched fields keep their defaults.
	assert.Equal(t, "fr", prefs.Language)
	assert.Equal(t, "XOF", prefs.Currency)
}

func TestResetPreferences_RestoresDefaults(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)
	userID := uuid.New()

	theme := "dark"
	lang := "en"
	_, err := svc.UpdatePreferences(context.Background(), userID, &dto.UpdatePreferencesRequest{
		Theme:    &theme,
		Language: &lang,
	})
	require.NoError(t, err)

	prefs, err := svc.ResetPreferences(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, "fr", prefs.Language)
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/repository"
	"brvm-market-api/internal/entity"
	"brvm-market-api/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService defines the interface for user preference management.
type UserService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.UserPreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.UserPreferencesResponse, error)
	ResetPreferences(ctx context.Context, userID uuid.UUID) (*dto.UserPreferencesResponse, error)
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger *logger.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

type userService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func defaultPreferences(userID uuid.UUID) *entity.UserPreferences {
	return &entity.UserPreferences{
		UserID:             userID,
		Theme:              "light",
		Language:           "fr",
		Currency:           "XOF",
		EmailNotifications: true,
		PushNotifications:  true,
		DefaultChartPeriod: "1M",
		FavoriteSectors:    datatypes.JSON([]byte("[]")),
		RiskProfile:        "moderate",
		InvestmentHorizon:  "medium",
	}
}

// GetPreferences returns the user's preferences, creating defaults on first
// access.
func (s *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.UserPreferencesResponse, error) {
	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = defaultPreferences(userID)
		if err := s.userRepo.SavePreferences(ctx, prefs); err != nil {
			s.logger.Error("Failed to create default preferences", logger.ErrorField(err), logger.Field("user_id", userID))
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return mapPreferencesResponse(prefs), nil
}

// UpdatePreferences applies a partial update; only provided fields change.
func (s *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.UserPreferencesResponse, error) {
	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = defaultPreferences(userID)
	} else if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.Language != nil {
		prefs.Language = *req.Language
	}
	if req.Currency != nil {
		prefs.Currency = *req.Currency
	}
	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		prefs.PushNotifications = *req.PushNotifications
	}
	if req.DefaultChartPeriod != nil {
		prefs.DefaultChartPeriod = *req.DefaultChartPeriod
	}
	if req.FavoriteSectors != nil {
		raw, err := json.Marshal(*req.FavoriteSectors)
		if err != nil {
			return nil, err
		}
		prefs.FavoriteSectors = datatypes.JSON(raw)
	}
	if req.RiskProfile != nil {
		prefs.RiskProfile = *req.RiskProfile
	}
	if req.InvestmentHorizon != nil {
		prefs.InvestmentHorizon = *req.InvestmentHorizon
	}

	if err := s.userRepo.SavePreferences(ctx, prefs); err != nil {
		s.logger.Error("Failed to update preferences", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return mapPreferencesResponse(prefs), nil
}

// ResetPreferences restores the default preferences.
func (s *userService) ResetPreferences(ctx context.Context, userID uuid.UUID) (*dto.UserPreferencesResponse, error) {
	if err := s.userRepo.DeletePreferences(ctx, userID); err != nil {
		return nil, err
	}
	prefs := defaultPreferences(userID)
	if err := s.userRepo.SavePreferences(ctx, prefs); err != nil {
		s.logger.Error("Failed to reset preferences", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return mapPreferencesResponse(prefs), nil
}

func mapPreferencesResponse(prefs *entity.UserPreferences) *dto.UserPreferencesResponse {
	favorites := []string{}
	if len(prefs.FavoriteSectors) > 0 {
		_ = json.Unmarshal(prefs.FavoriteSectors, &favorites)
	}
	return &dto.UserPreferencesResponse{
		UserID:             prefs.UserID,
		Theme:              prefs.Theme,
		Language:           prefs.Language,
		Currency:           prefs.Currency,
		EmailNotifications: prefs.EmailNotifications,
		PushNotifications:  prefs.PushNotifications,
		DefaultChartPeriod: prefs.DefaultChartPeriod,
		FavoriteSectors:    favorites,
		RiskProfile:        prefs.RiskProfile,
		InvestmentHorizon:  prefs.InvestmentHorizon,
		CreatedAt:          prefs.CreatedAt,
		UpdatedAt:          prefs.UpdatedAt,
	}
}

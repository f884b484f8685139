package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserPreferencesResponse is the body returned by the preferences endpoints.
type UserPreferencesResponse struct {
	UserID             uuid.UUID `json:"user_id"`
	Theme              string    `json:"theme"`
	Language           string    `json:"language"`
	Currency           string    `json:"currency"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	DefaultChartPeriod string    `json:"default_chart_period"`
	FavoriteSectors    []string  `json:"favorite_sectors"`
	RiskProfile        string    `json:"risk_profile"`
	InvestmentHorizon  string    `json:"investment_horizon"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UpdatePreferencesRequest is a partial update: only non-nil fields change.
type UpdatePreferencesRequest struct {
	Theme              *string   `json:"theme"`
	Language           *string   `json:"language"`
	Currency           *string   `json:"currency"`
	EmailNotifications *bool     `json:"email_notifications"`
	PushNotifications  *bool     `json:"push_notifications"`
	DefaultChartPeriod *string   `json:"default_chart_period"`
	FavoriteSectors    *[]string `json:"favorite_sectors"`
	RiskProfile        *string   `json:"risk_profile"`
	InvestmentHorizon  *string   `json:"investment_horizon"`
}

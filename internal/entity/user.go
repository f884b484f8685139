package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is a registered API caller.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	UserType     string    `gorm:"default:retail"`
	FirstName    string
	LastName     string
	Phone        string
	IsActive     bool      `gorm:"default:true"`
	IsVerified   bool      `gorm:"default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// UserPreferences stores per-user display and notification settings.
// FavoriteSectors is a JSON array of sector names.
type UserPreferences struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Theme              string    `gorm:"default:light"`
	Language           string    `gorm:"default:fr"`
	Currency           string    `gorm:"default:XOF"`
	EmailNotifications bool      `gorm:"default:true"`
	PushNotifications  bool      `gorm:"default:true"`
	DefaultChartPeriod string    `gorm:"default:1M"`
	FavoriteSectors    datatypes.JSON
	RiskProfile        string    `gorm:"default:moderate"`
	InvestmentHorizon  string    `gorm:"default:medium"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

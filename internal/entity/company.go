package entity

import (
	"time"
)

// Company is a listed company on the exchange. Sector is nullable: some
// listings have no sector classification and are excluded from sector
// statistics.
type Company struct {
	ID             uint             `gorm:"primaryKey"`
	Symbol         string           `gorm:"uniqueIndex;not null"`
	Name           string           `gorm:"not null"`
	Sector         *string          `gorm:"index"`
	CreatedAt      time.Time        `gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime"`
	HistoricalData []HistoricalData `gorm:"foreignKey:CompanyID"`
}

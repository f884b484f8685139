package entity

import "time"

// HistoricalData is one daily trading record for a company.
type HistoricalData struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"not null;index:idx_historical_data_company_date"`
	TradeDate time.Time `gorm:"not null;index:idx_historical_data_company_date"`
	Price     float64   `gorm:"not null"`
	Volume    int64
	Value     *float64
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default pluralization ("historical_data", not
// "historical_datas").
func (HistoricalData) TableName() string {
	return "historical_data"
}

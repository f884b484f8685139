package dto

import "time"

// Trend labels for sector performance.
const (
	TrendPositive = "positive"
	TrendNegative = "negative"
	TrendNeutral  = "neutral"
)

// SectorPerformance is the aggregate performance of one sector over a period.
type SectorPerformance struct {
	Sector           string  `json:"sector"`
	CompaniesCount   int     `json:"companies_count"`
	AvgPerformance   float64 `json:"avg_performance"`
	TotalPerformance float64 `json:"total_performance"`
	AvgCurrentPrice  float64 `json:"avg_current_price"`
	Trend            string  `json:"trend"`
}

// SectorPerformanceResponse is the body of GET /market/sectors/performance.
type SectorPerformanceResponse struct {
	Period  string              `json:"period"`
	Sectors []SectorPerformance `json:"sectors"`
}

// CompanyPerformance is one company's performance within a sector comparison.
type CompanyPerformance struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Performance  float64 `json:"performance"`
	Volume       int64   `json:"volume"`
}

// SectorComparison is the per-sector block of a sector comparison.
type SectorComparison struct {
	Sector         string               `json:"sector"`
	Companies      []CompanyPerformance `json:"companies"`
	AvgPerformance float64              `json:"avg_performance"`
	BestPerformer  *CompanyPerformance  `json:"best_performer"`
	WorstPerformer *CompanyPerformance  `json:"worst_performer"`
}

// SectorComparisonResponse is the body of GET /market/sectors/compare.
type SectorComparisonResponse struct {
	Period          string             `json:"period"`
	SectorsCompared []string           `json:"sectors_compared"`
	Comparison      []SectorComparison `json:"comparison"`
}

// PriceData is one point of a company's price history.
type PriceData struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume"`
	Value  float64   `json:"value"`
}

// QuoteResponse is the current quotation of a company.
type QuoteResponse struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CurrentPrice  float64   `json:"current_price"`
	Volume        int64     `json:"volume"`
	Value         float64   `json:"value"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	LastUpdate    time.Time `json:"last_update"`
}

// MoverEntry is one row of the top gainers/losers lists.
type MoverEntry struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// VolumeEntry is one row of the top volume list.
type VolumeEntry struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Volume       int64   `json:"volume"`
	Value        float64 `json:"value"`
}

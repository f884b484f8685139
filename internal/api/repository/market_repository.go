package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CompanyWindowRow is one company's price window used for sector statistics.
// StartPrice is the earliest price on/after the window start, CurrentPrice the
// latest known price; either may be NULL when the company has no data.
type CompanyWindowRow struct {
	Symbol       string
	Name         string
	Sector       *string
	StartPrice   *float64
	CurrentPrice *float64
	Volume       *int64
}

// PriceRow is one historical trading record.
type PriceRow struct {
	TradeDate time.Time
	Price     float64
	Volume    int64
	Value     *float64
}

// QuoteRow is the latest quotation of a company with its previous close.
type QuoteRow struct {
	Symbol       string
	Name         string
	CurrentPrice *float64
	Volume       *int64
	Value        *float64
	PrevPrice    *float64
	LastUpdate   *time.Time
}

// MoverRow is one row of the daily movers query.
type MoverRow struct {
	Symbol        string
	Name          string
	CurrentPrice  float64
	Change        *float64
	ChangePercent float64
	Volume        *int64
}

// VolumeRow is one row of the top volume query.
type VolumeRow struct {
	Symbol       string
	Name         string
	CurrentPrice float64
	Volume       int64
	Value        *float64
}

// MarketRepository defines the read queries behind the market endpoints.
type MarketRepository interface {
	FindCompanyWindows(ctx context.Context, windowStart time.Time) ([]CompanyWindowRow, error)
	FindCompanyWindowsBySectors(ctx context.Context, windowStart time.Time, sectors []string) ([]CompanyWindowRow, error)
	FindPriceHistory(ctx context.Context, symbol string, days int) ([]PriceRow, error)
	FindQuote(ctx context.Context, symbol string) (*QuoteRow, error)
	FindTopGainers(ctx context.Context, limit int) ([]MoverRow, error)
	FindTopLosers(ctx context.Context, limit int) ([]MoverRow, error)
	FindTopVolume(ctx context.Context, limit int) ([]VolumeRow, error)
}

// NewMarketRepository creates a new GORM-based market repository.
func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

type marketRepository struct {
	db *gorm.DB
}

const companyWindowQuery = `
SELECT
    c.symbol,
    c.name,
    c.sector,
    (SELECT hd.price FROM historical_data hd
     WHERE hd.company_id = c.id AND hd.trade_date >= ?
     ORDER BY hd.trade_date ASC LIMIT 1) AS start_price,
    (SELECT hd.price FROM historical_data hd
     WHERE hd.company_id = c.id
     ORDER BY hd.trade_date DESC LIMIT 1) AS current_price,
    (SELECT hd.volume FROM historical_data hd
     WHERE hd.company_id = c.id
     ORDER BY hd.trade_date DESC LIMIT 1) AS volume
FROM companies c
WHERE c.sector IS NOT NULL`

// FindCompanyWindows returns the price window of every company that has a
// sector classification.
func (r *marketRepository) FindCompanyWindows(ctx context.Context, windowStart time.Time) ([]CompanyWindowRow, error) {
	var rows []CompanyWindowRow
	err := r.db.WithContext(ctx).
		Raw(companyWindowQuery+" ORDER BY c.symbol", windowStart).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCompanyWindowsBySectors returns price windows for companies belonging to
// any of the given sectors.
func (r *marketRepository) FindCompanyWindowsBySectors(ctx context.Context, windowStart time.Time, sectors []string) ([]CompanyWindowRow, error) {
	var rows []CompanyWindowRow
	err := r.db.WithContext(ctx).
		Raw(companyWindowQuery+" AND c.sector IN ? ORDER BY c.symbol", windowStart, sectors).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPriceHistory returns the most recent trading records for a symbol,
// newest first.
func (r *marketRepository) FindPriceHistory(ctx context.Context, symbol string, days int) ([]PriceRow, error) {
	var rows []PriceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT hd.trade_date, hd.price, hd.volume, hd.value
		FROM historical_data hd
		JOIN companies c ON hd.company_id = c.id
		WHERE c.symbol = ?
		ORDER BY hd.trade_date DESC
		LIMIT ?`, symbol, days).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindQuote returns the latest quotation of a company, or nil when the symbol
// is unknown.
func (r *marketRepository) FindQuote(ctx context.Context, symbol string) (*QuoteRow, error) {
	var rows []QuoteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		    c.symbol,
		    c.name,
		    hd_current.price AS current_price,
		    hd_current.volume,
		    hd_current.value,
		    hd_prev.price AS prev_price,
		    hd_current.trade_date AS last_update
		FROM companies c
		LEFT JOIN LATERAL (
		    SELECT price, volume, value, trade_date
		    FROM historical_data
		    WHERE company_id = c.id
		    ORDER BY trade_date DESC
		    LIMIT 1
		) hd_current ON TRUE
		LEFT JOIN LATERAL (
		    SELECT price
		    FROM historical_data
		    WHERE company_id = c.id
		    ORDER BY trade_date DESC
		    OFFSET 1
		    LIMIT 1
		) hd_prev ON TRUE
		WHERE c.symbol = ?`, symbol).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

const dailyMoversQuery = `
SELECT
    c.symbol,
    c.name,
    hd_current.price AS current_price,
    (hd_current.price - hd_prev.price) AS change,
    CASE
        WHEN hd_prev.price > 0
        THEN ((hd_current.price - hd_prev.price) / hd_prev.price * 100)
        ELSE 0
    END AS change_percent,
    hd_current.volume
FROM companies c
LEFT JOIN LATERAL (
    SELECT price, volume FROM historical_data
    WHERE company_id = c.id
    ORDER BY trade_date DESC
    LIMIT 1
) hd_current ON TRUE
LEFT JOIN LATERAL (
    SELECT price FROM historical_data
    WHERE company_id = c.id
    ORDER BY trade_date DESC
    OFFSET 1
    LIMIT 1
) hd_prev ON TRUE
WHERE hd_current.price IS NOT NULL AND hd_prev.price IS NOT NULL`

// FindTopGainers returns companies with the largest positive daily change.
func (r *marketRepository) FindTopGainers(ctx context.Context, limit int) ([]MoverRow, error) {
	return r.findMovers(ctx, dailyMoversQuery+" ORDER BY change_percent DESC LIMIT ?", limit)
}

// FindTopLosers returns companies with the largest negative daily change.
func (r *marketRepository) FindTopLosers(ctx context.Context, limit int) ([]MoverRow, error) {
	return r.findMovers(ctx, dailyMoversQuery+" ORDER BY change_percent ASC LIMIT ?", limit)
}

func (r *marketRepository) findMovers(ctx context.Context, query string, limit int) ([]MoverRow, error) {
	var rows []MoverRow
	if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTopVolume returns companies ranked by latest traded volume.
func (r *marketRepository) FindTopVolume(ctx context.Context, limit int) ([]VolumeRow, error) {
	var rows []VolumeRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		    c.symbol,
		    c.name,
		    hd.price AS current_price,
		    hd.volume,
		    hd.value
		FROM companies c
		LEFT JOIN LATERAL (
		    SELECT price, volume, value FROM historical_data
		    WHERE company_id = c.id
		    ORDER BY trade_date DESC
		    LIMIT 1
		) hd ON TRUE
		WHERE hd.volume IS NOT NULL
		ORDER BY hd.volume DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

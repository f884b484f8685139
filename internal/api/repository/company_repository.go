package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CompanySnapshotRow is a company's latest price and volume, used as the
// reference point of the peers query.
type CompanySnapshotRow struct {
	Symbol string
	Name   string
	Sector *string
	Price  *float64
	Volume *int64
}

// PeerRow is one comparable company ranked by similarity to the reference.
type PeerRow struct {
	Symbol             string
	Name               string
	Sector             string
	CurrentPrice       float64
	Volume             *int64
	PriceChangePercent *float64
	SimilarityScore    float64
}

// ComparisonRow is one side of a pairwise company comparison over a window.
type ComparisonRow struct {
	Symbol       string
	Name         string
	Sector       *string
	StartPrice   *float64
	CurrentPrice *float64
	AvgVolume    *float64
}

// CompanyRepository defines the read queries behind the company endpoints.
type CompanyRepository interface {
	FindSnapshot(ctx context.Context, symbol string) (*CompanySnapshotRow, error)
	FindPeers(ctx context.Context, sector, excludeSymbol string, refPrice float64, refVolume int64, limit int) ([]PeerRow, error)
	FindComparisonRows(ctx context.Context, windowStart time.Time, symbols []string) ([]ComparisonRow, error)
}

// NewCompanyRepository creates a new GORM-based company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

type companyRepository struct {
	db *gorm.DB
}

// FindSnapshot returns a company's sector and latest price/volume, or nil when
// the symbol is unknown.
func (r *companyRepository) FindSnapshot(ctx context.Context, symbol string) (*CompanySnapshotRow, error) {
	var rows []CompanySnapshotRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.symbol, c.name, c.sector, hd.price, hd.volume
		FROM companies c
		LEFT JOIN LATERAL (
		    SELECT price, volume FROM historical_data
		    WHERE company_id = c.id
		    ORDER BY trade_date DESC
		    LIMIT 1
		) hd ON TRUE
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

// FindPeers returns companies in the same sector ranked by price/volume
// similarity to the reference values.
func (r *companyRepository) FindPeers(ctx context.Context, sector, excludeSymbol string, refPrice float64, refVolume int64, limit int) ([]PeerRow, error) {
	var rows []PeerRow
	err := r.db.WithContext(ctx).Raw(`
		WITH company_metrics AS (
		    SELECT
		        c.symbol,
		        c.name,
		        c.sector,
		        hd_current.price AS current_price,
		        hd_current.volume,
		        CASE
		            WHEN hd_prev.price > 0
		            THEN ((hd_current.price - hd_prev.price) / hd_prev.price * 100)
		        END AS price_change_percent,
		        ABS(hd_current.price - ?) AS price_diff,
		        ABS(COALESCE(hd_current.volume, 0) - ?) AS volume_diff
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
		    WHERE c.sector = ?
		    AND c.symbol != ?
		    AND hd_current.price IS NOT NULL
		)
		SELECT
		    symbol,
		    name,
		    sector,
		    current_price,
		    volume,
		    price_change_percent,
		    (price_diff + (volume_diff / 1000.0)) AS similarity_score
		FROM company_metrics
		ORDER BY similarity_score ASC
		LIMIT ?`, refPrice, refVolume, sector, excludeSymbol, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindComparisonRows returns the window performance inputs for the given
// symbols.
func (r *companyRepository) FindComparisonRows(ctx context.Context, windowStart time.Time, symbols []string) ([]ComparisonRow, error) {
	var rows []ComparisonRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		    c.symbol,
		    c.name,
		    c.sector,
		    (SELECT price FROM historical_data
		     WHERE company_id = c.id AND trade_date >= ?
		     ORDER BY trade_date ASC LIMIT 1) AS start_price,
		    (SELECT price FROM historical_data
		     WHERE company_id = c.id
		     ORDER BY trade_date DESC LIMIT 1) AS current_price,
		    (SELECT AVG(volume) FROM historical_data
		     WHERE company_id = c.id AND trade_date >= ?) AS avg_volume
		FROM companies c
		WHERE c.symbol IN ?`, windowStart, windowStart, symbols).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package service

import (
	"context"
	"time"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/repository"
	"brvm-market-api/pkg/logger"
	"brvm-market-api/pkg/utils"
)

// CompanyService defines the interface for company peer analysis.
type CompanyService interface {
	GetComparable(ctx context.Context, symbol string, limit int) (*dto.ComparableCompaniesResponse, error)
	CompareWith(ctx context.Context, symbol, peerSymbol, period string) (*dto.CompareCompaniesResponse, error)
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo repository.CompanyRepository, logger *logger.Logger) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		logger:      logger,
		now:         time.Now,
	}
}

type companyService struct {
	companyRepo repository.CompanyRepository
	logger      *logger.Logger
	now         func() time.Time
}

// GetComparable finds companies in the same sector with a similar price and
// volume profile.
func (s *companyService) GetComparable(ctx context.Context, symbol string, limit int) (*dto.ComparableCompaniesResponse, error) {
	ref, err := s.companyRepo.FindSnapshot(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to query reference company", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}
	if ref == nil {
		return nil, ErrNotFound
	}
	if ref.Sector == nil {
		return nil, ErrSectorNotDefined
	}

	var refPrice float64
	if ref.Price != nil {
		refPrice = *ref.Price
	}
	var refVolume int64
	if ref.Volume != nil {
		refVolume = *ref.Volume
	}

	peers, err := s.companyRepo.FindPeers(ctx, *ref.Sector, symbol, refPrice, refVolume, limit)
	if err != nil {
		s.logger.Error("Failed to query peers", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}

	comparable := make([]dto.ComparableCompany, 0, len(peers))
	for _, peer := range peers {
		c := dto.ComparableCompany{
			Symbol:          peer.Symbol,
			Name:            peer.Name,
			Sector:          peer.Sector,
			CurrentPrice:    peer.CurrentPrice,
			SimilarityScore: peer.SimilarityScore,
		}
		if peer.Volume != nil {
			c.Volume = *peer.Volume
		}
		if peer.PriceChangePercent != nil {
			c.PriceChangePercent = *peer.PriceChangePercent
		}
		comparable = append(comparable, c)
	}

	return &dto.ComparableCompaniesResponse{
		ReferenceCompany:    symbol,
		ReferenceSector:     *ref.Sector,
		ReferencePrice:      ref.Price,
		ComparableCompanies: comparable,
	}, nil
}

// CompareWith compares two companies' performance over the period.
func (s *companyService) CompareWith(ctx context.Context, symbol, peerSymbol, period string) (*dto.CompareCompaniesResponse, error) {
	if period == "YTD" {
		return nil, ErrInvalidPeriod
	}
	windowStart, ok := utils.WindowStart(period, s.now())
	if !ok {
		return nil, ErrInvalidPeriod
	}

	rows, err := s.companyRepo.FindComparisonRows(ctx, windowStart, []string{symbol, peerSymbol})
	if err != nil {
		s.logger.Error("Failed to query comparison rows", logger.ErrorField(err),
			logger.Field("symbol", symbol), logger.Field("peer", peerSymbol))
		return nil, err
	}

	bySymbol := make(map[string]repository.ComparisonRow, len(rows))
	for _, row := range rows {
		bySymbol[row.Symbol] = row
	}
	first, ok1 := bySymbol[symbol]
	second, ok2 := bySymbol[peerSymbol]
	if !ok1 || !ok2 {
		return nil, ErrNotFound
	}

	company1 := mapComparison(first)
	company2 := mapComparison(second)

	diff := company1.Performance - company2.Performance
	better := company2.Symbol
	if diff > 0 {
		better = company1.Symbol
	}
	var volumeDiffPct float64
	if company2.AvgVolume > 0 {
		volumeDiffPct = float64(company1.AvgVolume-company2.AvgVolume) / float64(company2.AvgVolume) * 100
	}

	return &dto.CompareCompaniesResponse{
		Period:   period,
		Company1: company1,
		Company2: company2,
		Comparison: dto.ComparisonVerdict{
			PerformanceDifference:   diff,
			BetterPerformer:         better,
			VolumeDifferencePercent: volumeDiffPct,
			SameSector:              company1.Sector != "" && company1.Sector == company2.Sector,
		},
	}, nil
}

func mapComparison(row repository.ComparisonRow) dto.CompanyComparison {
	c := dto.CompanyComparison{
		Symbol: row.Symbol,
		Name:   row.Name,
	}
	if row.Sector != nil {
		c.Sector = *row.Sector
	}
	if row.StartPrice != nil {
		c.StartPrice = *row.StartPrice
	}
	if row.CurrentPrice != nil {
		c.CurrentPrice = *row.CurrentPrice
	}
	if c.StartPrice > 0 {
		c.Performance = (c.CurrentPrice - c.StartPrice) / c.StartPrice * 100
	}
	if row.AvgVolume != nil {
		c.AvgVolume = int64(*row.AvgVolume)
	}
	return c
}

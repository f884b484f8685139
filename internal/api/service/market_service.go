package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/repository"
	"brvm-market-api/pkg/logger"
	"brvm-market-api/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const moversCacheTTL = time.Minute

// MarketService defines the interface for market statistics.
type MarketService interface {
	GetSectorPerformance(ctx context.Context, period string) (*dto.SectorPerformanceResponse, error)
	CompareSectors(ctx context.Context, sectors []string, period string) (*dto.SectorComparisonResponse, error)
	GetPriceHistory(ctx context.Context, symbol string, days int) ([]dto.PriceData, error)
	GetQuote(ctx context.Context, symbol string) (*dto.QuoteResponse, error)
	GetTopGainers(ctx context.Context, limit int) ([]dto.MoverEntry, error)
	GetTopLosers(ctx context.Context, limit int) ([]dto.MoverEntry, error)
	GetTopVolume(ctx context.Context, limit int) ([]dto.VolumeEntry, error)
}

// NewMarketService creates a new market service.
func NewMarketService(marketRepo repository.MarketRepository, logger *logger.Logger) MarketService {
	return &marketService{
		marketRepo: marketRepo,
		logger:     logger,
		movers:     cache.New(moversCacheTTL, 5*time.Minute),
		now:        time.Now,
	}
}

type marketService struct {
	marketRepo repository.MarketRepository
	logger     *logger.Logger
	movers     *cache.Cache
	now        func() time.Time
}

// companyWindow is one company's computed performance over the window.
type companyWindow struct {
	sector       string
	symbol       string
	name         string
	currentPrice float64
	performance  float64
	volume       int64
}

// qualifyWindows filters rows down to companies with both a start and a
// current price and computes their percentage performance.
func qualifyWindows(rows []repository.CompanyWindowRow) []companyWindow {
	windows := make([]companyWindow, 0, len(rows))
	for _, row := range rows {
		// Companies missing either end of the window carry no signal
		// for the period and are excluded. A zero start price cannot
		// anchor a percentage change either.
		if row.Sector == nil || row.StartPrice == nil || row.CurrentPrice == nil || *row.StartPrice == 0 {
			continue
		}
		w := companyWindow{
			sector:       *row.Sector,
			symbol:       row.Symbol,
			name:         row.Name,
			currentPrice: *row.CurrentPrice,
			performance:  (*row.CurrentPrice - *row.StartPrice) / *row.StartPrice * 100,
		}
		if row.Volume != nil {
			w.volume = *row.Volume
		}
		windows = append(windows, w)
	}
	return windows
}

func trendLabel(avgPerformance float64) string {
	switch {
	case avgPerformance > 0:
		return dto.TrendPositive
	case avgPerformance < 0:
		return dto.TrendNegative
	default:
		return dto.TrendNeutral
	}
}

// GetSectorPerformance aggregates performance per sector over the period.
func (s *marketService) GetSectorPerformance(ctx context.Context, period string) (*dto.SectorPerformanceResponse, error) {
	windowStart, ok := utils.WindowStart(period, s.now())
	if !ok {
		return nil, ErrInvalidPeriod
	}

	rows, err := s.marketRepo.FindCompanyWindows(ctx, windowStart)
	if err != nil {
		s.logger.Error("Failed to query company windows", logger.ErrorField(err), logger.Field("period", period))
		return nil, err
	}

	type sectorAgg struct {
		count    int
		sumPerf  float64
		sumPrice float64
	}
	groups := make(map[string]*sectorAgg)
	for _, w := range qualifyWindows(rows) {
		agg, ok := groups[w.sector]
		if !ok {
			agg = &sectorAgg{}
			groups[w.sector] = agg
		}
		agg.count++
		agg.sumPerf += w.performance
		agg.sumPrice += w.currentPrice
	}

	sectors := make([]dto.SectorPerformance, 0, len(groups))
	for name, agg := range groups {
		avg := agg.sumPerf / float64(agg.count)
		sectors = append(sectors, dto.SectorPerformance{
			Sector:           name,
			CompaniesCount:   agg.count,
			AvgPerformance:   avg,
			TotalPerformance: agg.sumPerf,
			AvgCurrentPrice:  agg.sumPrice / float64(agg.count),
			Trend:            trendLabel(avg),
		})
	}

	sort.Slice(sectors, func(i, j int) bool {
		if sectors[i].AvgPerformance != sectors[j].AvgPerformance {
			return sectors[i].AvgPerformance > sectors[j].AvgPerformance
		}
		return sectors[i].Sector < sectors[j].Sector
	})

	return &dto.SectorPerformanceResponse{Period: period, Sectors: sectors}, nil
}

// CompareSectors compares the requested sectors against each other over the
// period. Sectors with no qualifying companies are absent from the result.
func (s *marketService) CompareSectors(ctx context.Context, sectors []string, period string) (*dto.SectorComparisonResponse, error) {
	// YTD is only defined for the performance endpoint.
	if period == "YTD" {
		return nil, ErrInvalidPeriod
	}
	windowStart, ok := utils.WindowStart(period, s.now())
	if !ok {
		return nil, ErrInvalidPeriod
	}

	rows, err := s.marketRepo.FindCompanyWindowsBySectors(ctx, windowStart, sectors)
	if err != nil {
		s.logger.Error("Failed to query sector companies", logger.ErrorField(err), logger.Field("sectors", sectors))
		return nil, err
	}

	groups := make(map[string][]companyWindow)
	for _, w := range qualifyWindows(rows) {
		groups[w.sector] = append(groups[w.sector], w)
	}

	comparison := make([]dto.SectorComparison, 0, len(groups))
	for _, name := range sectors {
		members, ok := groups[name]
		if !ok {
			continue
		}
		// Guard against the same sector being requested twice.
		delete(groups, name)

		companies := make([]dto.CompanyPerformance, 0, len(members))
		var sumPerf float64
		best, worst := 0, 0
		for i, m := range members {
			companies = append(companies, dto.CompanyPerformance{
				Symbol:       m.symbol,
				Name:         m.name,
				CurrentPrice: m.currentPrice,
				Performance:  m.performance,
				Volume:       m.volume,
			})
			sumPerf += m.performance
			if m.performance > members[best].performance {
				best = i
			}
			if m.performance < members[worst].performance {
				worst = i
			}
		}

		comparison = append(comparison, dto.SectorComparison{
			Sector:         name,
			Companies:      companies,
			AvgPerformance: sumPerf / float64(len(members)),
			BestPerformer:  &companies[best],
			WorstPerformer: &companies[worst],
		})
	}

	return &dto.SectorComparisonResponse{
		Period:          period,
		SectorsCompared: sectors,
		Comparison:      comparison,
	}, nil
}

// GetPriceHistory returns a company's price history, oldest first.
func (s *marketService) GetPriceHistory(ctx context.Context, symbol string, days int) ([]dto.PriceData, error) {
	rows, err := s.marketRepo.FindPriceHistory(ctx, symbol, days)
	if err != nil {
		s.logger.Error("Failed to query price history", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	// Rows come newest first; the response is chronological.
	prices := make([]dto.PriceData, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		p := dto.PriceData{Date: row.TradeDate, Price: row.Price, Volume: row.Volume}
		if row.Value != nil {
			p.Value = *row.Value
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// GetQuote returns a company's latest quotation with its daily change.
func (s *marketService) GetQuote(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	row, err := s.marketRepo.FindQuote(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to query quote", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}
	if row == nil || row.CurrentPrice == nil {
		return nil, ErrNotFound
	}

	quote := &dto.QuoteResponse{
		Symbol:       row.Symbol,
		Name:         row.Name,
		CurrentPrice: *row.CurrentPrice,
	}
	if row.Volume != nil {
		quote.Volume = *row.Volume
	}
	if row.Value != nil {
		quote.Value = *row.Value
	}
	if row.LastUpdate != nil {
		quote.LastUpdate = *row.LastUpdate
	}
	if row.PrevPrice != nil {
		quote.Change = *row.CurrentPrice - *row.PrevPrice
		if *row.PrevPrice > 0 {
			quote.ChangePercent = quote.Change / *row.PrevPrice * 100
		}
	}
	return quote, nil
}

// GetTopGainers returns the best daily performers.
func (s *marketService) GetTopGainers(ctx context.Context, limit int) ([]dto.MoverEntry, error) {
	return s.getMovers(ctx, "gainers", limit, s.marketRepo.FindTopGainers)
}

// GetTopLosers returns the worst daily performers.
func (s *marketService) GetTopLosers(ctx context.Context, limit int) ([]dto.MoverEntry, error) {
	return s.getMovers(ctx, "losers", limit, s.marketRepo.FindTopLosers)
}

func (s *marketService) getMovers(ctx context.Context, kind string, limit int, find func(context.Context, int) ([]repository.MoverRow, error)) ([]dto.MoverEntry, error) {
	key := fmt.Sprintf("market:%s:%d", kind, limit)
	if cached, found := s.movers.Get(key); found {
		return cached.([]dto.MoverEntry), nil
	}

	rows, err := find(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to query movers", logger.ErrorField(err), logger.Field("kind", kind))
		return nil, err
	}

	entries := make([]dto.MoverEntry, 0, len(rows))
	for _, row := range rows {
		e := dto.MoverEntry{
			Symbol:        row.Symbol,
			Name:          row.Name,
			CurrentPrice:  row.CurrentPrice,
			ChangePercent: row.ChangePercent,
		}
		if row.Change != nil {
			e.Change = *row.Change
		}
		if row.Volume != nil {
			e.Volume = *row.Volume
		}
		entries = append(entries, e)
	}

	s.movers.Set(key, entries, cache.DefaultExpiration)
	return entries, nil
}

// GetTopVolume returns companies ranked by latest traded volume.
func (s *marketService) GetTopVolume(ctx context.Context, limit int) ([]dto.VolumeEntry, error) {
	key := fmt.Sprintf("market:volume:%d", limit)
	if cached, found := s.movers.Get(key); found {
		return cached.([]dto.VolumeEntry), nil
	}

	rows, err := s.marketRepo.FindTopVolume(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to query top volume", logger.ErrorField(err))
		return nil, err
	}

	entries := make([]dto.VolumeEntry, 0, len(rows))
	for _, row := range rows {
		e := dto.VolumeEntry{
			Symbol:       row.Symbol,
			Name:         row.Name,
			CurrentPrice: row.CurrentPrice,
			Volume:       row.Volume,
		}
		if row.Value != nil {
			e.Value = *row.Value
		}
		entries = append(entries, e)
	}

	s.movers.Set(key, entries, cache.DefaultExpiration)
	return entries, nil
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMarketService struct {
	perfResp    *dto.SectorPerformanceResponse
	compResp    *dto.SectorComparisonResponse
	err         error
	lastPeriod  string
	lastSectors []string
	calls       int
}

func (m *mockMarketService) GetSectorPerformance(ctx context.Context, period string) (*dto.SectorPerformanceResponse, error) {
	m.calls++
	m.lastPeriod = period
	return m.perfResp, m.err
}

func (m *mockMarketService) CompareSectors(ctx context.Context, sectors []string, period string) (*dto.SectorComparisonResponse, error) {
	m.calls++
	m.lastPeriod = period
	m.lastSectors = sectors
	return m.compResp, m.err
}

func (m *mockMarketService) GetPriceHistory(ctx context.Context, symbol string, days int) ([]dto.PriceData, error) {
	return nil, m.err
}

func (m *mockMarketService) GetQuote(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	return nil, m.err
}

func (m *mockMarketService) GetTopGainers(ctx context.Context, limit int) ([]dto.MoverEntry, error) {
	return nil, m.err
}

func (m *mockMarketService) GetTopLosers(ctx context.Context, limit int) ([]dto.MoverEntry, error) {
	return nil, m.err
}

func (m *mockMarketService) GetTopVolume(ctx context.Context, limit int) ([]dto.VolumeEntry, error) {
	return nil, m.err
}

func newTestMarketHandler(svc *mockMarketService) *MarketHandler {
	log, _ := logger.New("error", "json")
	return NewMarketHandler(svc, log)
}

func performRequest(h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestGetSectorPerformance_InvalidPeriodRejected(t *testing.T) {
	svc := &mockMarketService{}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.GetSectorPerformance, "/api/v1/market/sectors/performance?period=2W")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestGetSectorPerformance_DefaultsPeriod(t *testing.T) {
	svc := &mockMarketService{perfResp: &dto.SectorPerformanceResponse{Period: "1M", Sectors: []dto.SectorPerformance{}}}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.GetSectorPerformance, "/api/v1/market/sectors/performance")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1M", svc.lastPeriod)
}

func TestGetSectorPerformance_AcceptsYTD(t *testing.T) {
	svc := &mockMarketService{perfResp: &dto.SectorPerformanceResponse{Period: "YTD"}}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.GetSectorPerformance, "/api/v1/market/sectors/performance?period=YTD")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "YTD", svc.lastPeriod)
}

func TestGetSectorPerformance_ResponseBody(t *testing.T) {
	svc := &mockMarketService{perfResp: &dto.SectorPerformanceResponse{
		Period: "1M",
		Sectors: []dto.SectorPerformance{
			{Sector: "Banking", CompaniesCount: 2, AvgPerformance: 7.5, TotalPerformance: 15, AvgCurrentPrice: 160, Trend: dto.TrendPositive},
		},
	}}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.GetSectorPerformance, "/api/v1/market/sectors/performance?period=1M")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.SectorPerformanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sectors, 1)
	assert.Equal(t, "Banking", body.Sectors[0].Sector)
	assert.Equal(t, "positive", body.Sectors[0].Trend)
}

func TestGetSectorPerformance_ServiceError(t *testing.T) {
	svc := &mockMarketService{err: errors.New("db down")}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.GetSectorPerformance, "/api/v1/market/sectors/performance?period=1M")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCompareSectors_RequiresSectors(t *testing.T) {
	svc := &mockMarketService{}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.CompareSectors, "/api/v1/market/sectors/compare?period=1M")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestCompareSectors_YTDRejected(t *testing.T) {
	svc := &mockMarketService{}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.CompareSectors, "/api/v1/market/sectors/compare?sectors=Banking&period=YTD")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestCompareSectors_ParsesSectorList(t *testing.T) {
	svc := &mockMarketService{compResp: &dto.SectorComparisonResponse{Period: "3M"}}
	h := newTestMarketHandler(svc)

	rec := performRequest(h.CompareSectors, "/api/v1/market/sectors/compare?sectors=Banking,%20Telecom,&period=3M")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Banking", "Telecom"}, svc.lastSectors)
}

func TestQueryInt_Bounds(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?days=2000", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	_, err := queryInt(c, "days", 100, 1, 1000)
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	value, err := queryInt(c, "days", 100, 1, 1000)
	assert.NoError(t, err)
	assert.Equal(t, 100, value)
}

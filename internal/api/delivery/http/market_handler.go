package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/service"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
)

// performancePeriods are the lookback windows accepted by the sector
// performance endpoint. The compare endpoint accepts the same set minus YTD.
var performancePeriods = map[string]bool{
	"1D": true, "1W": true, "1M": true, "3M": true, "6M": true, "1Y": true, "YTD": true,
}

var comparePeriods = map[string]bool{
	"1D": true, "1W": true, "1M": true, "3M": true, "6M": true, "1Y": true,
}

// MarketHandler handles HTTP requests for market statistics.
type MarketHandler struct {
	marketService service.MarketService
	logger        *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService service.MarketService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{marketService: marketService, logger: logger}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sectors/performance", h.GetSectorPerformance)
	g.GET("/sectors/compare", h.CompareSectors)
	g.GET("/gainers/top", h.GetTopGainers)
	g.GET("/losers/top", h.GetTopLosers)
	g.GET("/volume/top", h.GetTopVolume)
	g.GET("/:symbol/price", h.GetPriceHistory)
	g.GET("/:symbol/quote", h.GetQuote)
}

// GetSectorPerformance godoc
// @Summary Sector performance
// @Description Aggregate stock performance per sector over a period
// @Tags market
// @Produce  json
// @Param   period  query   string  false   "Lookback period"   Enums(1D,1W,1M,3M,6M,1Y,YTD)
// @Success 200 {object} dto.SectorPerformanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/sectors/performance [get]
func (h *MarketHandler) GetSectorPerformance(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "1M"
	}
	if !performancePeriods[period] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid period, allowed values: 1D, 1W, 1M, 3M, 6M, 1Y, YTD"})
	}

	resp, err := h.marketService.GetSectorPerformance(c.Request().Context(), period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute sector performance"})
	}
	return c.JSON(http.StatusOK, resp)
}

// CompareSectors godoc
// @Summary Compare sectors
// @Description Compare named sectors against each other over a period
// @Tags market
// @Produce  json
// @Param   sectors query   string  true    "Comma-separated sector names"
// @Param   period  query   string  false   "Lookback period"   Enums(1D,1W,1M,3M,6M,1Y)
// @Success 200 {object} dto.SectorComparisonResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/sectors/compare [get]
func (h *MarketHandler) CompareSectors(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "1M"
	}
	if !comparePeriods[period] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid period, allowed values: 1D, 1W, 1M, 3M, 6M, 1Y"})
	}

	sectors := splitSectors(c.QueryParam("sectors"))
	if len(sectors) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "The sectors parameter is required"})
	}

	resp, err := h.marketService.CompareSectors(c.Request().Context(), sectors, period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compare sectors"})
	}
	return c.JSON(http.StatusOK, resp)
}

// splitSectors parses the comma-separated sectors parameter, dropping empty
// entries and surrounding whitespace.
func splitSectors(raw string) []string {
	parts := strings.Split(raw, ",")
	sectors := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			sectors = append(sectors, name)
		}
	}
	return sectors
}

// GetPriceHistory godoc
// @Summary Price history
// @Description Historical prices of a company, oldest first
// @Tags market
// @Produce  json
// @Param   symbol  path    string  true    "Company symbol"
// @Param   days    query   int     false   "Number of days (1-1000)"
// @Success 200 {array} dto.PriceData
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/{symbol}/price [get]
func (h *MarketHandler) GetPriceHistory(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))
	days, err := queryInt(c, "days", 100, 1, 1000)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid days parameter"})
	}

	prices, err := h.marketService.GetPriceHistory(c.Request().Context(), symbol, days)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No data found for " + symbol})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get price history"})
	}
	return c.JSON(http.StatusOK, prices)
}

// GetQuote godoc
// @Summary Current quote
// @Description Latest quotation of a company
// @Tags market
// @Produce  json
// @Param   symbol  path    string  true    "Company symbol"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/{symbol}/quote [get]
func (h *MarketHandler) GetQuote(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))

	quote, err := h.marketService.GetQuote(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No quote found for " + symbol})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get quote"})
	}
	return c.JSON(http.StatusOK, quote)
}

// GetTopGainers godoc
// @Summary Top gainers
// @Description Best daily performers
// @Tags market
// @Produce  json
// @Param   limit   query   int     false   "Number of rows (1-50)"
// @Success 200 {array} dto.MoverEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/gainers/top [get]
func (h *MarketHandler) GetTopGainers(c echo.Context) error {
	return h.topMovers(c, h.marketService.GetTopGainers)
}

// GetTopLosers godoc
// @Summary Top losers
// @Description Worst daily performers
// @Tags market
// @Produce  json
// @Param   limit   query   int     false   "Number of rows (1-50)"
// @Success 200 {array} dto.MoverEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/losers/top [get]
func (h *MarketHandler) GetTopLosers(c echo.Context) error {
	return h.topMovers(c, h.marketService.GetTopLosers)
}

func (h *MarketHandler) topMovers(c echo.Context, get func(context.Context, int) ([]dto.MoverEntry, error)) error {
	limit, err := queryInt(c, "limit", 10, 1, 50)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit parameter"})
	}

	entries, err := get(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get movers"})
	}
	return c.JSON(http.StatusOK, entries)
}

// GetTopVolume godoc
// @Summary Top volumes
// @Description Companies ranked by traded volume
// @Tags market
// @Produce  json
// @Param   limit   query   int     false   "Number of rows (1-50)"
// @Success 200 {array} dto.VolumeEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /market/volume/top [get]
func (h *MarketHandler) GetTopVolume(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10, 1, 50)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit parameter"})
	}

	entries, err := h.marketService.GetTopVolume(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get top volume"})
	}
	return c.JSON(http.StatusOK, entries)
}

// queryInt parses an integer query parameter with a default and bounds.
func queryInt(c echo.Context, name string, def, min, max int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, errors.New("out of range")
	}
	return value, nil
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"brvm-market-api/internal/api/service"
	"brvm-market-api/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CompanyHandler handles HTTP requests for company peer analysis.
type CompanyHandler struct {
	companyService service.CompanyService
	logger         *logger.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, logger: logger}
}

// RegisterRoutes registers the company routes to the Echo group.
func (h *CompanyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:symbol/comparable", h.GetComparable)
	g.GET("/:symbol/compare-with/:peer", h.CompareWith)
}

// GetComparable godoc
// @Summary Comparable companies
// @Description Companies in the same sector with a similar price/volume profile
// @Tags companies
// @Produce  json
// @Param   symbol  path    string  true    "Reference company symbol"
// @Param   limit   query   int     false   "Number of peers (1-20)"
// @Success 200 {object} dto.ComparableCompaniesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /companies/{symbol}/comparable [get]
func (h *CompanyHandler) GetComparable(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))
	limit, err := queryInt(c, "limit", 5, 1, 20)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit parameter"})
	}

	resp, err := h.companyService.GetComparable(c.Request().Context(), symbol, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Company " + symbol + " not found"})
		case errors.Is(err, service.ErrSectorNotDefined):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No sector defined for " + symbol})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get comparable companies"})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// CompareWith godoc
// @Summary Compare two companies
// @Description Pairwise performance comparison over a period
// @Tags companies
// @Produce  json
// @Param   symbol  path    string  true    "First company symbol"
// @Param   peer    path    string  true    "Second company symbol"
// @Param   period  query   string  false   "Lookback period"   Enums(1M,3M,6M,1Y)
// @Success 200 {object} dto.CompareCompaniesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /companies/{symbol}/compare-with/{peer} [get]
func (h *CompanyHandler) CompareWith(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))
	peer := strings.ToUpper(c.Param("peer"))

	period := c.QueryParam("period")
	if period == "" {
		period = "3M"
	}
	switch period {
	case "1M", "3M", "6M", "1Y":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid period, allowed values: 1M, 3M, 6M, 1Y"})
	}

	resp, err := h.companyService.CompareWith(c.Request().Context(), symbol, peer, period)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "One or both companies not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compare companies"})
	}
	return c.JSON(http.StatusOK, resp)
}

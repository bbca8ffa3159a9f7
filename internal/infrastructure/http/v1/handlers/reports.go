package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// serve builds one report from the query string.
func serve[F, R any](h *ReportsHandler, read func(dto.ReportQuery) F, build func(context.Context, F) (R, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := read(dto.NewReportQuery(c.Request.URL.Query()))
		report, err := build(c.Request.Context(), filter)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, report)
	}
}

// RegisterRoutes registers every report under rg.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	s := h.service

	rg.GET("/sales-volume", serve(h, dto.ReportQuery.SalesVolume, s.SalesVolume))
	rg.GET("/sales-volume/compare", serve(h, dto.ReportQuery.Compare, s.SalesCompare))
	rg.GET("/top-products", serve(h, dto.ReportQuery.Ranking, s.TopProducts))
	rg.GET("/least-popular-products", serve(h, dto.ReportQuery.Ranking, s.LeastPopularProducts))
	rg.GET("/most-ordered-products", serve(h, dto.ReportQuery.Ranking, s.MostOrderedProducts))
	rg.GET("/dealers-sales", serve(h, dto.ReportQuery.Dealers, s.DealersSales))
	rg.GET("/dealers-compare", serve(h, dto.ReportQuery.Dealers, s.DealersCompare))
	rg.GET("/dealer-avg-check", serve(h, dto.ReportQuery.Dealers, s.DealerAvgCheck))
	rg.GET("/orders-and-returns", serve(h, dto.ReportQuery.Returns, s.OrdersAndReturns))
	rg.GET("/sales-geography", serve(h, dto.ReportQuery.Filter, s.SalesGeography))
	rg.GET("/top-categories", serve(h, dto.ReportQuery.Ranking, s.TopCategories))
	rg.GET("/assortment-structure", serve(h, dto.ReportQuery.Assortment, s.AssortmentStructure))
	rg.GET("/central-stock", serve(h, dto.ReportQuery.Stock, s.CentralStock))
	rg.GET("/stocks-by-warehouse-dealer", serve(h, dto.ReportQuery.Stock, s.StocksByWarehouseDealer))
	rg.GET("/forecast-shortages", serve(h, dto.ReportQuery.Forecast, s.ForecastShortages))
	rg.GET("/plan-vs-actual", serve(h, dto.ReportQuery.Plan, s.PlanVsActual))
	rg.GET("/plan-achievement", serve(h, dto.ReportQuery.Plan, s.PlanAchievement))
	rg.GET("/orders-count", serve(h, dto.ReportQuery.Orders, s.OrdersCount))
	rg.GET("/average-order-amount", serve(h, dto.ReportQuery.Orders, s.AverageOrderAmount))
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the warehouse ledger.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), dto.StockListFilter(c.Request.URL.Query()))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.BaseHandler.List(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /stock/:warehouse_id/:product_id. A missing row is created
// with zero quantity.
func (h *StockHandler) Get(c *gin.Context) {
	warehouseID, ok := h.ParseID(c, "warehouse_id")
	if !ok {
		return
	}
	productID, ok := h.ParseID(c, "product_id")
	if !ok {
		return
	}

	row, err := h.service.GetOrCreate(c.Request.Context(), warehouseID, productID, h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

// RegisterRoutes registers ledger routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:warehouse_id/:product_id", h.Get)
}

package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	domainFilter "github.com/amriddinov-m/panasonic-api/internal/domain/filter"
)

// CatalogHandler provides generic HTTP handlers for catalog entities.
type CatalogHandler[T entity.Touchable, Req any] struct {
	*BaseHandler
	service    *domain.CatalogService[T]
	entityName string

	mapCreate  func(req *Req, now time.Time, userID *id.ID) (T, error)
	mapUpdate  func(req *Req, existing T) error
	conditions func(c *gin.Context) []domainFilter.Item
}

// CatalogHandlerConfig configures the catalog handler.
type CatalogHandlerConfig[T entity.Touchable, Req any] struct {
	Service    *domain.CatalogService[T]
	EntityName string

	MapCreate func(req *Req, now time.Time, userID *id.ID) (T, error)
	MapUpdate func(req *Req, existing T) error

	// Conditions reads entity specific list filters from the query string
	Conditions func(c *gin.Context) []domainFilter.Item
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T entity.Touchable, Req any](base *BaseHandler, cfg CatalogHandlerConfig[T, Req]) *CatalogHandler[T, Req] {
	return &CatalogHandler[T, Req]{
		BaseHandler: base,
		service:     cfg.Service,
		entityName:  cfg.EntityName,
		mapCreate:   cfg.MapCreate,
		mapUpdate:   cfg.MapUpdate,
		conditions:  cfg.Conditions,
	}
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T, Req]) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.IDs = id.ParseList(c.QueryArray("ids"))

	if h.conditions != nil {
		filter.Conditions = append(filter.Conditions, h.conditions(c)...)
	}

	// Advanced filter: JSON array of {field, operator, value}
	if raw := c.Query("filter"); raw != "" {
		var items []domainFilter.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter format (json expected)"))
			return
		}
		filter.Conditions = append(filter.Conditions, items...)
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.BaseHandler.List(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T, Req]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Create handles POST /{entity} - create new entity.
func (h *CatalogHandler[T, Req]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.mapCreate(&req, h.service.Now(), h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T, Req]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.mapUpdate(&req, existing); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// Delete handles DELETE /{entity}/:id - soft delete entity.
func (h *CatalogHandler[T, Req]) Delete(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the CRUD routes.
func (h *CatalogHandler[T, Req]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

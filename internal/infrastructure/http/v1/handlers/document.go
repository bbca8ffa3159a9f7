package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/dto"
)

// DocumentHandler provides generic HTTP handlers for document entities.
type DocumentHandler[D documents.Doc[S], S ~string, Req any] struct {
	*BaseHandler
	service *documents.Service[D, S]

	mapCreate func(req *Req, now time.Time, userID *id.ID) D
	mapUpdate func(req *Req, existing D)
}

// DocumentHandlerConfig configures the document handler.
type DocumentHandlerConfig[D documents.Doc[S], S ~string, Req any] struct {
	Service   *documents.Service[D, S]
	MapCreate func(req *Req, now time.Time, userID *id.ID) D
	MapUpdate func(req *Req, existing D)
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler[D documents.Doc[S], S ~string, Req any](
	base *BaseHandler,
	cfg DocumentHandlerConfig[D, S, Req],
) *DocumentHandler[D, S, Req] {
	return &DocumentHandler[D, S, Req]{
		BaseHandler: base,
		service:     cfg.Service,
		mapCreate:   cfg.MapCreate,
		mapUpdate:   cfg.MapUpdate,
	}
}

// List handles GET /{documents}
func (h *DocumentHandler[D, S, Req]) List(c *gin.Context) {
	filter := documents.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			IDs:            id.ParseList(c.QueryArray("ids")),
			IncludeDeleted: c.Query("includeDeleted") == "true",
			OrderBy:        c.Query("orderBy"),
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
		},
		Statuses:    dto.SplitValues(c.QueryArray("status")),
		ClientID:    id.ParseOptional(c.Query("client")),
		WarehouseID: id.ParseOptional(c.Query("warehouse")),
		UserID:      id.ParseOptional(c.Query("user")),
		DateFrom:    dto.ParseDate(c.Query("date_from")),
		DateTo:      dto.ParseDate(c.Query("date_to")),
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.BaseHandler.List(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /{documents}/:id
func (h *DocumentHandler[D, S, Req]) Get(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Create handles POST /{documents}. A status in the body is applied through
// the regular transition right after the document is stored.
func (h *DocumentHandler[D, S, Req]) Create(c *gin.Context) {
	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	doc := h.mapCreate(&req, h.service.Now(), h.UserID(c))
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// statusRequest is implemented by bodies that may carry a target status.
type statusRequest interface {
	TargetStatus() string
}

// Update handles PUT /{documents}/:id. A status in the body is applied
// through the regular transition in the same transaction as the edit.
func (h *DocumentHandler[D, S, Req]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var status string
	if sr, ok := any(&req).(statusRequest); ok {
		status = sr.TargetStatus()
	}

	h.mapUpdate(&req, doc)
	if err := h.service.UpdateWithStatus(ctx, doc, status); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Delete handles DELETE /{documents}/:id
func (h *DocumentHandler[D, S, Req]) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ChangeStatus handles POST /{documents}/:id/status
func (h *DocumentHandler[D, S, Req]) ChangeStatus(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusChangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.ChangeStatus(c.Request.Context(), docID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Transitions handles GET /{documents}/transitions
func (h *DocumentHandler[D, S, Req]) Transitions(c *gin.Context) {
	h.OK(c, h.service.Transitions())
}

// RegisterRoutes registers standard routes.
func (h *DocumentHandler[D, S, Req]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/transitions", h.Transitions)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/status", h.ChangeStatus)
}

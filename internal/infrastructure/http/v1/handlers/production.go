package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/domain/production"
	"espetaria/internal/infrastructure/http/v1/dto"
)

// ProductionHandler exposes the production-recording engine over HTTP.
type ProductionHandler struct {
	*BaseHandler
	service *production.Service
}

// NewProductionHandler creates the production handler.
func NewProductionHandler(base *BaseHandler, service *production.Service) *ProductionHandler {
	return &ProductionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Record handles POST /productions - record a production event.
func (h *ProductionHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordProductionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	engineReq, err := req.ToRequest()
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.Record(ctx, engineReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// Get handles GET /productions/:id.
func (h *ProductionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	record, err := h.service.GetByID(ctx, recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List handles GET /productions with filtering and pagination.
func (h *ProductionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ProductionListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	records, total, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductionListResponse{
		Items:      records,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Movements handles GET /productions/:id/movements - the ledger slice of one record.
func (h *ProductionHandler) Movements(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	history, err := h.service.Movements(ctx, recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// ProductMovements handles GET /products/:id/movements.
func (h *ProductionHandler) ProductMovements(c *gin.Context) {
	entityID, ok := h.movementTarget(c)
	if !ok {
		return
	}

	items, err := h.service.MovementsForProduct(c.Request.Context(),
		entityID,
		h.ParseIntQuery(c, "limit", 0),
		h.ParseIntQuery(c, "offset", 0),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RawMaterialMovements handles GET /raw-materials/:id/movements.
func (h *ProductionHandler) RawMaterialMovements(c *gin.Context) {
	entityID, ok := h.movementTarget(c)
	if !ok {
		return
	}

	items, err := h.service.MovementsForRawMaterial(c.Request.Context(),
		entityID,
		h.ParseIntQuery(c, "limit", 0),
		h.ParseIntQuery(c, "offset", 0),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SupplyMovements handles GET /supplies/:id/movements.
func (h *ProductionHandler) SupplyMovements(c *gin.Context) {
	entityID, ok := h.movementTarget(c)
	if !ok {
		return
	}

	items, err := h.service.MovementsForSupply(c.Request.Context(),
		entityID,
		h.ParseIntQuery(c, "limit", 0),
		h.ParseIntQuery(c, "offset", 0),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ProductionHandler) movementTarget(c *gin.Context) (id.ID, bool) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.ID{}, false
	}
	return entityID, true
}

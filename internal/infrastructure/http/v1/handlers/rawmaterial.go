package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espetaria/internal/domain/catalogs/rawmaterial"
	"espetaria/internal/infrastructure/http/v1/dto"
)

// RawMaterialHandler extends the generic catalog handler with stock queries.
type RawMaterialHandler struct {
	*CatalogHandler[*rawmaterial.RawMaterial, dto.CreateRawMaterialRequest, dto.UpdateRawMaterialRequest]
	service *rawmaterial.Service
}

// NewRawMaterialHandler creates the raw material handler.
func NewRawMaterialHandler(base *BaseHandler, service *rawmaterial.Service) *RawMaterialHandler {
	config := CatalogHandlerConfig[
		*rawmaterial.RawMaterial,
		dto.CreateRawMaterialRequest,
		dto.UpdateRawMaterialRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "raw_material",

		MapCreateDTO: func(req dto.CreateRawMaterialRequest) *rawmaterial.RawMaterial {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateRawMaterialRequest, existing *rawmaterial.RawMaterial) *rawmaterial.RawMaterial {
			req.Apply(existing)
			return existing
		},
	}

	return &RawMaterialHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// LowStock handles GET /raw-materials/low-stock - materials at or below minimum.
func (h *RawMaterialHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.FindLowStock(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

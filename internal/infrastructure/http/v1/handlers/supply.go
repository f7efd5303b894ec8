package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/infrastructure/http/v1/dto"
)

// SupplyHandler extends the generic catalog handler with sub-recipe
// management and stock queries.
type SupplyHandler struct {
	*CatalogHandler[*supply.Supply, dto.CreateSupplyRequest, dto.UpdateSupplyRequest]
	service *supply.Service
}

// NewSupplyHandler creates the supply handler.
func NewSupplyHandler(base *BaseHandler, service *supply.Service) *SupplyHandler {
	config := CatalogHandlerConfig[
		*supply.Supply,
		dto.CreateSupplyRequest,
		dto.UpdateSupplyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "supply",

		MapCreateDTO: func(req dto.CreateSupplyRequest) *supply.Supply {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSupplyRequest, existing *supply.Supply) *supply.Supply {
			req.Apply(existing)
			return existing
		},
	}

	return &SupplyHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// GetRecipe handles GET /supplies/:id/recipe - the sub-recipe of a compound supply.
func (h *SupplyHandler) GetRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	supplyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	recipe, err := h.service.GetRecipe(ctx, supplyID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if recipe == nil {
		h.Error(c, apperror.NewNotFound("supply recipe", supplyID.String()))
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// SaveRecipe handles PUT /supplies/:id/recipe - create or replace the sub-recipe.
func (h *SupplyHandler) SaveRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	supplyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SupplyRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recipe := supply.NewSupplyRecipe(supplyID, req.YieldAmount)
	for i, item := range req.Items {
		ingredientID, err := id.Parse(item.IngredientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid ingredient id").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1))
			return
		}
		recipe.AddItem(ingredientID, item.Quantity, item.Unit)
	}

	if err := h.service.SaveRecipe(ctx, recipe); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /supplies/:id/recipe - make the supply simple again.
func (h *SupplyHandler) DeleteRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	supplyID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.DeleteRecipe(ctx, supplyID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LowStock handles GET /supplies/low-stock - supplies at or below minimum.
func (h *SupplyHandler) LowStock(c *gin.Context) {
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

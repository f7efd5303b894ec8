package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/domain/recipe"
	"espetaria/internal/infrastructure/http/v1/dto"
)

// RecipeHandler exposes product recipes over HTTP.
type RecipeHandler struct {
	*BaseHandler
	service *recipe.Service
}

// NewRecipeHandler creates the recipe handler.
func NewRecipeHandler(base *BaseHandler, service *recipe.Service) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rcp, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, rcp); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, rcp)
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rcp, err := h.service.GetByID(ctx, recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rcp)
}

// UpdateLines handles PUT /recipes/:id/lines - replace the line set.
func (h *RecipeHandler) UpdateLines(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateRecipeLinesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rcp, err := h.service.GetByID(ctx, recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(rcp); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.UpdateLines(ctx, rcp); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rcp)
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, recipeID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByProduct handles GET /products/:id/recipes.
func (h *RecipeHandler) ListByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	recipes, err := h.service.ListByProduct(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": recipes})
}

// ActiveByProduct handles GET /products/:id/recipe - the recipe production uses.
func (h *RecipeHandler) ActiveByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rcp, err := h.service.GetActiveByProduct(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if rcp == nil {
		h.Error(c, apperror.NewNotFound("recipe", productID.String()))
		return
	}

	c.JSON(http.StatusOK, rcp)
}

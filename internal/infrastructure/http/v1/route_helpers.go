package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler is the route surface every catalog handler exposes.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetByCode(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET(":id", handler.Get)
	group.GET("by-code/:code", handler.GetByCode)
	group.PUT(":id", handler.Update)
	group.DELETE(":id", handler.Delete)
	group.POST(":id/deletion-mark", handler.SetDeletionMark)
}

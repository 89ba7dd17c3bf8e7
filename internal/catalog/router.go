package catalog

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures venue layout browsing and admin maintenance routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Public browsing, nested under the owning concert
	concerts := rg.Group("/concerts/:id")
	{
		concerts.GET("/zones", controller.ListZones)
		concerts.GET("/zones/:zoneId/sections", controller.ListSections)
		concerts.GET("/zones/:zoneId/seats", controller.ListSeats)
	}

	// Admin maintenance
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.PATCH("/seats/:id/status", controller.UpdateSeatStatus)
		admin.PATCH("/zones/:id/price", controller.UpdateZonePrice)
	}
}

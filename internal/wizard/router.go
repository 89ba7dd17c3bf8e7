package wizard

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSelectionRoutes configures the seat-selection wizard routes. All of
// them require an authenticated user: a session belongs to exactly one.
func SetupSelectionRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	selection := rg.Group("/selection")
	selection.Use(middleware.JWTAuth(cfg))
	{
		selection.POST("/start", controller.StartSelection)
		selection.GET("", controller.GetSelection)
		selection.POST("/zone", controller.SelectZone)
		selection.POST("/section", controller.SelectSection)
		selection.POST("/seats/toggle", controller.ToggleSeat)
		selection.POST("/back", controller.GoBack)
		selection.POST("/submit", controller.Submit)
		selection.DELETE("", controller.EndSelection)
	}
}

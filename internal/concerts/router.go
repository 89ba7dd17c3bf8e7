package concerts

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupConcertRoutes configures all concert browsing and admin routes
func SetupConcertRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Public browsing
	concerts := rg.Group("/concerts")
	{
		concerts.GET("", controller.ListConcerts)     // GET /api/v1/concerts
		concerts.GET("/:id", controller.GetConcert)   // GET /api/v1/concerts/:id
	}

	// Admin management
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.POST("/bands", controller.CreateBand)
		admin.POST("/concerts", controller.CreateConcert)
		admin.POST("/schedules", controller.CreateSchedule)
		admin.DELETE("/concerts/:id", controller.DeleteConcert)
	}
}

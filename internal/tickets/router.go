package tickets

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTicketRoutes configures ticket retrieval and gate validation routes
func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	authed := rg.Group("")
	authed.Use(middleware.JWTAuth(cfg))
	{
		authed.GET("/tickets", controller.ListMyTickets)
		authed.GET("/bookings/:id/tickets", controller.ListBookingTickets)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.POST("/tickets/validate", controller.ValidateTicket)
	}
}
